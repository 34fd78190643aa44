package llm

// ResponseBuffer накапливает тело ответа кусками в порядке поступления.
// Ничего не обрезает и не перекодирует.
type ResponseBuffer struct {
	data []byte
}

// Write всегда принимает весь кусок: io.Copy сверяет возвращённое
// количество байт и при расхождении отдаёт io.ErrShortWrite.
func (b *ResponseBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// Bytes отдаёт внутренний срез без копии.
func (b *ResponseBuffer) Bytes() []byte {
	if b.data == nil {
		return []byte{}
	}
	return b.data
}

func (b *ResponseBuffer) String() string {
	return string(b.data)
}

func (b *ResponseBuffer) Len() int {
	return len(b.data)
}
