package blob

import (
	"sync"
	"testing"
)

func TestStore_CreateResolveRevoke(t *testing.T) {
	s := NewStore()

	ref := s.Create([]byte("\x89PNG\r\n\x1a\n"), "a.png")
	if !IsRef(ref) {
		t.Fatalf("ref missing scheme: %s", ref)
	}

	entry, ok := s.Resolve(ref)
	if !ok {
		t.Fatal("resolve failed")
	}
	if entry.Name != "a.png" {
		t.Fatalf("name lost: %s", entry.Name)
	}

	s.Revoke(ref)
	if _, ok := s.Resolve(ref); ok {
		t.Fatal("resolved a revoked reference")
	}
	// 重复撤销是幂等的
	s.Revoke(ref)
}

func TestIsRef(t *testing.T) {
	if IsRef("https://cdn/x.png") {
		t.Fatal("remote url misclassified as local reference")
	}
	if !IsRef("blob:abc") {
		t.Fatal("blob ref not recognized")
	}
}

// 并发创建互不串扰
func TestStore_Concurrent(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	refs := make([]string, 100)
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs[i] = s.Create([]byte{byte(i)}, "f")
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, 100)
	for _, r := range refs {
		if _, dup := seen[r]; dup {
			t.Fatalf("duplicate ref: %s", r)
		}
		seen[r] = struct{}{}
		if e, ok := s.Resolve(r); !ok || len(e.Data) != 1 {
			t.Fatalf("lost entry for %s", r)
		}
	}
	if s.Len() != 100 {
		t.Fatalf("expected 100 live refs, got %d", s.Len())
	}
}
