package main

import (
	"fmt"

	"mem_arena"
)

type Player struct {
	ID   uint64
	HP   uint32
	MP   uint32
	Name [32]byte
}

func NewPlayer(id uint64, hp, mp uint32, name string) Player {
	p := Player{ID: id, HP: hp, MP: mp}
	copy(p.Name[:], []byte(name))
	return p
}

func main() {
	arena, err := mem_arena.New(1)
	if err != nil {
		panic(err)
	}
	defer arena.Close()

	// 每帧一批临时对象：帧内分配，帧尾整体释放，块跨帧复用。
	for frame := 0; frame < 3; frame++ {
		sc, err := arena.Scope()
		if err != nil {
			panic(err)
		}

		players, err := mem_arena.AllocSlice[Player](sc, 1000)
		if err != nil {
			panic(err)
		}
		for i := range players {
			players[i] = NewPlayer(uint64(i), uint32(i), uint32(i), fmt.Sprintf("player%d", i))
		}

		boss, err := mem_arena.Alloc(sc, NewPlayer(9999, 100, 100, "boss"))
		if err != nil {
			panic(err)
		}

		var totalHP uint64
		for i := range players {
			totalHP += uint64(players[i].HP)
		}
		st := arena.Stats()
		fmt.Printf("frame=%d players=%d totalHP=%d boss=%s blocks=%d used=%d cap=%d\n",
			frame, len(players), totalHP, string(boss.Name[:4]), st.Blocks, st.Used, st.Cap)

		sc.Release()
	}

	st := arena.Stats()
	fmt.Printf("done: blocks=%d used=%d cap=%d\n", st.Blocks, st.Used, st.Cap)
}
