package jobs

import (
	"sync"

	"cwdash/internal/pkg/client/clockwork"
)

// Store 保存最近一次被接受的后端响应.
//
// 每次请求前调用 Begin 领取一个递增的代号, 响应返回后用 Commit 提交.
// 只有代号比已应用的代号新时才会替换数据, 因此晚到的旧响应不会覆盖新数据.
type Store struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  clockwork.JobsResponse
	ok      bool
}

func NewStore() *Store {
	return &Store{}
}

// Begin issues the generation of a new request.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit replaces the stored response with resp if gen is newer than the last
// applied generation. It reports whether resp was applied.
func (s *Store) Commit(gen uint64, resp clockwork.JobsResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.latest = resp
	s.ok = true
	return true
}

// Latest returns the stored response. ok is false until a first Commit.
func (s *Store) Latest() (clockwork.JobsResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.ok
}
