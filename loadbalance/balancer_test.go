package loadbalance

import (
	"errors"
	"testing"

	"tbv-rpc/registry"
)

func TestRoundRobinCyclesThroughEndpoints(t *testing.T) {
	endpoints := []registry.Endpoint{
		{Addr: "10.0.0.1:55555"},
		{Addr: "10.0.0.2:55555"},
		{Addr: "10.0.0.3:55555"},
	}

	b := &RoundRobin{}
	seen := make(map[string]int)
	for i := 0; i < 6; i++ {
		ep, err := b.Pick(endpoints)
		if err != nil {
			t.Fatal(err)
		}
		seen[ep.Addr]++
	}
	for _, ep := range endpoints {
		if seen[ep.Addr] != 2 {
			t.Fatalf("uneven distribution: %v", seen)
		}
	}
}

func TestRoundRobinEmptyList(t *testing.T) {
	b := &RoundRobin{}
	if _, err := b.Pick(nil); !errors.Is(err, ErrNoEndpoints) {
		t.Fatalf("expected ErrNoEndpoints, got %v", err)
	}
}
