package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
)

// Payload 是 payload 构建器的产物：端点 URL、请求头与请求体。
// 构建器是纯函数，不做任何网络访问。
type Payload struct {
	Method string
	URL    string
	Header http.Header
	Body   io.Reader

	// ContentLength 为请求体字节数，大于 0 时随请求发送 Content-Length，
	// 否则由 net/http 推断（文件等未知长度的 Body 会走分块传输）。
	ContentLength int64
}

// NewPayload 构造 POST 请求载荷。header 为 nil 时使用空 Header。
// body 为本地文件时按剩余字节数填充 ContentLength。
func NewPayload(url string, header http.Header, body io.Reader) *Payload {
	if header == nil {
		header = make(http.Header)
	}
	return &Payload{
		Method:        http.MethodPost,
		URL:           url,
		Header:        header,
		Body:          body,
		ContentLength: fileLength(body),
	}
}

// fileLength 返回可 Stat 且可 Seek 的 body（如 *os.File）从当前偏移起的剩余长度，
// 无法确定时返回 0。
func fileLength(body io.Reader) int64 {
	f, ok := body.(interface {
		io.Seeker
		Stat() (fs.FileInfo, error)
	})
	if !ok {
		return 0
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	offset, err := f.Seek(0, io.SeekCurrent)
	if err != nil || offset > info.Size() {
		return 0
	}
	return info.Size() - offset
}

// JSONPayload 将 v 编码为 JSON 请求体。
// 结构体按字段声明顺序编码，map 按键排序，同一输入总得到同一字节序列。
func JSONPayload(url string, header http.Header, v any) (*Payload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	p := NewPayload(url, header, bytes.NewReader(data))
	if p.Header.Get("Content-Type") == "" {
		p.Header.Set("Content-Type", "application/json")
	}
	return p, nil
}

// Bytes 读出请求体并将 Body 替换为可再次读取的副本。
func (p *Payload) Bytes() ([]byte, error) {
	if p.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(p.Body)
	if err != nil {
		return nil, err
	}
	p.Body = bytes.NewReader(data)
	p.ContentLength = int64(len(data))
	return data, nil
}
