package model

import "testing"

func TestPoolIDsRoundTrip(t *testing.T) {
	var s StudySession

	// 未固化：nil 表示不限制
	if ids := s.PoolIDs(); ids != nil {
		t.Fatalf("unset pool should be nil, got %v", ids)
	}

	if err := s.SetPoolIDs([]uint{3, 1, 2}); err != nil {
		t.Fatalf("SetPoolIDs: %v", err)
	}
	ids := s.PoolIDs()
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 1 || ids[2] != 2 {
		t.Fatalf("round trip lost order: %v", ids)
	}

	// 空切片也要保真：空池不等于不限制
	if err := s.SetPoolIDs([]uint{}); err != nil {
		t.Fatalf("SetPoolIDs empty: %v", err)
	}
	ids = s.PoolIDs()
	if ids == nil || len(ids) != 0 {
		t.Fatalf("empty pool should stay empty non-nil, got %v", ids)
	}

	// nil 清空回不限制
	if err := s.SetPoolIDs(nil); err != nil {
		t.Fatalf("SetPoolIDs nil: %v", err)
	}
	if s.PracticePool != nil || s.PoolIDs() != nil {
		t.Fatalf("nil should clear the pool, got %v", s.PoolIDs())
	}
}

func TestIsParticipant(t *testing.T) {
	s := StudySession{UserAID: 1, UserBID: 2}
	if !s.IsParticipant(1) || !s.IsParticipant(2) {
		t.Fatal("participants not recognized")
	}
	if s.IsParticipant(3) {
		t.Fatal("outsider recognized as participant")
	}
}
