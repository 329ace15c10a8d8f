package types

import (
	"errors"

	"github.com/mr-tron/base58"
	"lukechampine.com/blake3"
)

// ============================================================================
//                              Topic - 主题标识
// ============================================================================

// TopicSize 主题标识的字节长度
const TopicSize = 32

// Topic 发布订阅主题标识符
//
// 由任意字节串（人类可读的主题名）经 BLAKE3-256 哈希派生，
// 长度固定、可比较、可作 map 键。按内容判等与哈希，创建后不可变。
//
// 派生是单向的：线上只传 Topic 本身，不恢复原始主题名。
type Topic [TopicSize]byte

// EmptyTopic 空主题
var EmptyTopic Topic

// ErrInvalidTopic 无效的主题错误
var ErrInvalidTopic = errors.New("invalid topic: must be 32 bytes")

// NewTopic 从任意字节串派生主题
//
// 公式: Topic = BLAKE3-256(name)
func NewTopic(name []byte) Topic {
	return Topic(blake3.Sum256(name))
}

// TopicFromString 从主题名字符串派生主题
func TopicFromString(name string) Topic {
	return NewTopic([]byte(name))
}

// TopicFromBytes 从已派生的 32 字节创建主题
//
// 用于从线上帧恢复 Topic，不做二次哈希。
func TopicFromBytes(b []byte) (Topic, error) {
	if len(b) != TopicSize {
		return EmptyTopic, ErrInvalidTopic
	}
	var t Topic
	copy(t[:], b)
	return t, nil
}

// String 返回 Topic 的 Base58 字符串表示
func (t Topic) String() string {
	return base58.Encode(t[:])
}

// ShortString 返回 Topic 的短字符串表示
//
// 格式：Base58 前 8 个字符，用于日志中的简短标识。
func (t Topic) ShortString() string {
	s := t.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Bytes 返回 Topic 的字节切片
func (t Topic) Bytes() []byte {
	return t[:]
}

// Equal 比较两个 Topic 是否相等
func (t Topic) Equal(other Topic) bool {
	return t == other
}
