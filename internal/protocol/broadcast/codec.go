// Package broadcast 实现主题洪泛协议核心
package broadcast

import (
	"io"

	"github.com/multiformats/go-varint"

	"github.com/dep2p/go-broadcast/pkg/types"
)

// 帧格式:
//
//	uvarint(body 长度) || body
//	body = kind(1 字节) || topic(32 字节) || payload(仅 broadcast)
//
// 长度上限由 Config.MaxMessageSize 约束（作用于 body）。

// headerSize body 中 kind + topic 的固定字节数
const headerSize = 1 + types.TopicSize

// EncodeMessage 编码消息 body（不含长度前缀）
func EncodeMessage(msg types.Message, maxSize int) ([]byte, error) {
	if !msg.Kind.Valid() {
		return nil, ErrInvalidMessage
	}

	size := headerSize
	if msg.Kind == types.MessageBroadcast {
		size += len(msg.Payload)
	}
	if maxSize > 0 && size > maxSize {
		return nil, ErrMessageTooLarge
	}

	body := make([]byte, 0, size)
	body = append(body, byte(msg.Kind))
	body = append(body, msg.Topic[:]...)
	if msg.Kind == types.MessageBroadcast {
		body = append(body, msg.Payload...)
	}
	return body, nil
}

// DecodeMessage 解码消息 body（不含长度前缀）
func DecodeMessage(body []byte) (types.Message, error) {
	if len(body) < headerSize {
		return types.Message{}, ErrMessageTruncated
	}

	kind := types.MessageKind(body[0])
	if !kind.Valid() {
		return types.Message{}, ErrInvalidMessage
	}

	topic, err := types.TopicFromBytes(body[1:headerSize])
	if err != nil {
		return types.Message{}, ErrInvalidMessage
	}

	payload := body[headerSize:]
	if kind != types.MessageBroadcast {
		// 控制消息不允许携带载荷
		if len(payload) != 0 {
			return types.Message{}, ErrInvalidMessage
		}
		return types.Message{Kind: kind, Topic: topic}, nil
	}

	if len(payload) == 0 {
		payload = nil
	}
	return types.Message{Kind: kind, Topic: topic, Payload: payload}, nil
}

// WriteMessage 向 w 写入一条带长度前缀的消息帧
func WriteMessage(w io.Writer, msg types.Message, maxSize int) error {
	body, err := EncodeMessage(msg, maxSize)
	if err != nil {
		return err
	}

	frame := make([]byte, varint.UvarintSize(uint64(len(body)))+len(body))
	n := varint.PutUvarint(frame, uint64(len(body)))
	copy(frame[n:], body)

	_, err = w.Write(frame)
	return err
}

// ReadMessage 从 r 读取一条带长度前缀的消息帧
func ReadMessage(r io.Reader, maxSize int) (types.Message, error) {
	length, err := varint.ReadUvarint(asByteReader(r))
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return types.Message{}, err
		}
		return types.Message{}, ErrInvalidMessage
	}
	if maxSize > 0 && length > uint64(maxSize) {
		return types.Message{}, ErrMessageTooLarge
	}
	if length < headerSize {
		return types.Message{}, ErrMessageTruncated
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return types.Message{}, ErrMessageTruncated
	}
	return DecodeMessage(body)
}

// asByteReader 将任意 Reader 适配为 varint 所需的 ByteReader
func asByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &singleByteReader{r: r}
}

// singleByteReader 逐字节读取适配器
type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}
