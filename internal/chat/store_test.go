package chat

import (
	"sync"
	"testing"
)

func TestStore_Append(t *testing.T) {
	store := NewStore()

	store.Append(NewUserMessage("Hello", ""))
	store.Append(NewAssistantMessage("Hi there!"))

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}

	snap := store.Snapshot()
	if snap[0].Role != RoleUser {
		t.Errorf("first message role = %s, want user", snap[0].Role)
	}
	if snap[1].Role != RoleAssistant {
		t.Errorf("second message role = %s, want assistant", snap[1].Role)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	store := NewStore()
	store.Append(NewUserMessage("Hello", ""))

	snap := store.Snapshot()
	snap[0].Text = "mutated"

	if store.Snapshot()[0].Text != "Hello" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		store.Append(NewUserMessage("msg", ""))
	}

	store.Clear()

	if store.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", store.Len())
	}
	if len(store.Snapshot()) != 0 {
		t.Error("Snapshot after Clear should be empty")
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	store := NewStore()
	store.Append(NewUserMessage("Hello", ""))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Snapshot()
				_ = store.Len()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			store.Append(NewAssistantMessage("reply"))
		}
	}()
	wg.Wait()

	if store.Len() != 101 {
		t.Errorf("Len = %d, want 101", store.Len())
	}
}
