package engine

import (
	"errors"
	"testing"
	"unsafe"

	"mem_arena/internal/errs"
)

const testBlockSize = 64 << 10

func mustArena(t *testing.T, blockSize int) *Arena {
	t.Helper()
	a, err := New(blockSize)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func openScope(t *testing.T, a *Arena) {
	t.Helper()
	if err := a.OpenScope(); err != nil {
		t.Fatalf("OpenScope: %v", err)
	}
}

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func TestNewArena(t *testing.T) {
	a := mustArena(t, testBlockSize)
	defer a.Close()
	st := a.Stats()
	if st.Blocks != 1 || st.Used != 0 || st.Cap != testBlockSize {
		t.Errorf("Stats=%+v", st)
	}
	if _, err := New(0); !errors.Is(err, errs.ErrBadArgument) {
		t.Errorf("New(0): want ErrBadArgument got %v", err)
	}
}

func TestReserveRequiresScope(t *testing.T) {
	a := mustArena(t, testBlockSize)
	defer a.Close()
	if _, err := a.Reserve(16, 8); !errors.Is(err, errs.ErrNoScope) {
		t.Errorf("Reserve without scope: want ErrNoScope got %v", err)
	}
}

func TestReserveBadArguments(t *testing.T) {
	a := mustArena(t, testBlockSize)
	defer a.Close()
	openScope(t, a)
	defer a.ReleaseScope()

	cases := []struct{ size, align int }{
		{0, 8}, {-1, 8}, {16, 0}, {16, -8}, {16, 3}, {16, 24},
	}
	for _, c := range cases {
		if _, err := a.Reserve(c.size, c.align); !errors.Is(err, errs.ErrBadArgument) {
			t.Errorf("Reserve(%d, %d): want ErrBadArgument got %v", c.size, c.align, err)
		}
	}
}

func TestScopeGuard(t *testing.T) {
	a := mustArena(t, testBlockSize)
	defer a.Close()
	openScope(t, a)
	if err := a.OpenScope(); !errors.Is(err, errs.ErrScopeOpen) {
		t.Errorf("second OpenScope: want ErrScopeOpen got %v", err)
	}
	a.ReleaseScope()
	if err := a.OpenScope(); err != nil {
		t.Errorf("OpenScope after release: %v", err)
	}
	a.ReleaseScope()
	// 无 scope 时 release 是 no-op
	a.ReleaseScope()
}

func TestFirstFit(t *testing.T) {
	a := mustArena(t, 4096)
	defer a.Close()
	openScope(t, a)
	defer a.ReleaseScope()

	v1, err := a.Reserve(64, 8)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	// 放不下，触发第二块
	big, err := a.Reserve(8192, 8)
	if err != nil {
		t.Fatalf("Reserve big: %v", err)
	}
	if st := a.Stats(); st.Blocks != 2 {
		t.Fatalf("Blocks=%d want 2", st.Blocks)
	}
	// 小请求应回到第一块（first-fit），紧跟 v1 之后
	v2, err := a.Reserve(8, 8)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if addrOf(v2) != addrOf(v1)+64 {
		t.Errorf("first-fit: v2 addr %#x want %#x", addrOf(v2), addrOf(v1)+64)
	}
	if addrOf(v2) == addrOf(big) {
		t.Error("v2 landed in the new block")
	}
}

func TestGrowthSizing(t *testing.T) {
	a := mustArena(t, 4096)
	defer a.Close()
	openScope(t, a)
	defer a.ReleaseScope()

	if _, err := a.Reserve(10000, 8); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	st := a.Stats()
	if st.Blocks != 2 {
		t.Fatalf("Blocks=%d want 2", st.Blocks)
	}
	// 新块大小 = max(blockSize, size+align)
	if st.Cap != 4096+10008 {
		t.Errorf("Cap=%d want %d", st.Cap, 4096+10008)
	}
}

func TestGrowthUsesDefaultForSmall(t *testing.T) {
	a := mustArena(t, 4096)
	defer a.Close()
	openScope(t, a)
	defer a.ReleaseScope()

	// 填满第一块后的小请求仍按默认块大小增长
	if _, err := a.Reserve(4096, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if _, err := a.Reserve(64, 8); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	st := a.Stats()
	if st.Blocks != 2 || st.Cap != 8192 {
		t.Errorf("Blocks=%d Cap=%d want 2/8192", st.Blocks, st.Cap)
	}
}

func TestReleaseScopeResetsAllBlocks(t *testing.T) {
	a := mustArena(t, 4096)
	defer a.Close()
	openScope(t, a)

	a.Reserve(1024, 8)
	a.Reserve(8192, 8)
	if st := a.Stats(); st.Used == 0 {
		t.Fatal("Used should be > 0")
	}
	a.ReleaseScope()
	st := a.Stats()
	if st.Used != 0 {
		t.Errorf("Used=%d after release", st.Used)
	}
	if st.Blocks != 2 {
		t.Errorf("Blocks=%d: release must not drop blocks", st.Blocks)
	}
}

func TestCloseLifecycle(t *testing.T) {
	a := mustArena(t, testBlockSize)
	openScope(t, a)
	if err := a.Close(); !errors.Is(err, errs.ErrScopeOpen) {
		t.Errorf("Close with open scope: want ErrScopeOpen got %v", err)
	}
	a.ReleaseScope()
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.OpenScope(); !errors.Is(err, errs.ErrClosed) {
		t.Errorf("OpenScope after close: want ErrClosed got %v", err)
	}
	if _, err := a.Reserve(16, 8); !errors.Is(err, errs.ErrClosed) {
		t.Errorf("Reserve after close: want ErrClosed got %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("double Close: %v", err)
	}
	if st := a.Stats(); st.Blocks != 0 || st.Cap != 0 {
		t.Errorf("Stats after close: %+v", st)
	}
}
