package blob

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Scheme 可撤销本地引用的前缀，形如 blob:550e8400-...
const Scheme = "blob:"

// Entry 一份驻留内存的文件字节及其元信息
type Entry struct {
	Data        []byte
	Name        string
	ContentType string
}

// Store 持有会话内的可撤销本地引用。引用在被文档不再持有时
// 必须显式 Revoke，所有权归最后持有它的一方。
type Store struct {
	entries cmap.ConcurrentMap[string, Entry]
}

func NewStore() *Store {
	return &Store{entries: cmap.New[Entry]()}
}

// Create 为文件字节创建一个新引用
func (s *Store) Create(data []byte, name string) string {
	n := len(data)
	if n > 512 {
		n = 512
	}
	ref := Scheme + uuid.NewString()
	s.entries.Set(ref, Entry{
		Data:        data,
		Name:        name,
		ContentType: http.DetectContentType(data[:n]),
	})
	return ref
}

// Resolve 把引用物化回字节，引用已撤销时 ok 为 false
func (s *Store) Resolve(ref string) (Entry, bool) {
	return s.entries.Get(ref)
}

// Revoke 释放引用，幂等
func (s *Store) Revoke(ref string) {
	s.entries.Remove(ref)
}

// Len 当前存活的引用数
func (s *Store) Len() int {
	return s.entries.Count()
}

// IsRef 判断 src 是否为可撤销本地引用
func IsRef(src string) bool {
	return strings.HasPrefix(src, Scheme)
}
