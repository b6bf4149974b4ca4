package storage

import (
	"errors"
	"os"
	"testing"
)

func TestMem_ReadWriteExists(t *testing.T) {
	m := NewMem()
	if m.Exists("a.md") {
		t.Error("Exists = true on empty store")
	}
	if err := m.Write("2025/01/01.md", []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := m.Read("2025/01/01.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q", got)
	}
	if !m.Exists("2025/01/01.md") {
		t.Error("Exists = false after write")
	}
}

func TestMem_ReadMissingIsNotExist(t *testing.T) {
	m := NewMem()
	_, err := m.Read("nope.md")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestMem_ListFiltersAndSorts(t *testing.T) {
	m := NewMem()
	_ = m.Write("2025/12/29.md", []byte("b"))
	_ = m.Write("2025/12/05.md", []byte("a"))
	_ = m.Write("2025/12/notes.txt", []byte("skip"))
	_ = m.Write("2024/01/01.md", []byte("c"))

	items, err := m.List("2025")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Path != "2025/12/05.md" || items[1].Path != "2025/12/29.md" {
		t.Errorf("items = %v", items)
	}
}

func TestMem_ReadReturnsCopy(t *testing.T) {
	m := NewMem()
	_ = m.Write("a.md", []byte("abc"))
	got, _ := m.Read("a.md")
	got[0] = 'z'
	again, _ := m.Read("a.md")
	if string(again) != "abc" {
		t.Errorf("stored content mutated: %q", again)
	}
}
