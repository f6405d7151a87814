package internal

import (
	"reflect"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestSortConversations(t *testing.T) {
	in := []Conversation{
		{ID: "old", UpdateTime: f(10)},
		{ID: "created-only", CreateTime: f(25)},
		{ID: "new", CreateTime: f(1), UpdateTime: f(30)},
		{ID: "none"},
		{ID: "tie", UpdateTime: f(10)},
	}

	got := SortConversations(in)
	var ids []string
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	want := []string{"new", "created-only", "old", "tie", "none"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
	if in[0].ID != "old" {
		t.Error("SortConversations() reordered its input")
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 53)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		size      int
		wantPage  int
		wantPages int
		wantFirst int
		wantLen   int
	}{
		{name: "first", page: 1, size: 25, wantPage: 1, wantPages: 3, wantFirst: 0, wantLen: 25},
		{name: "last partial", page: 3, size: 25, wantPage: 3, wantPages: 3, wantFirst: 50, wantLen: 3},
		{name: "clamped high", page: 99, size: 25, wantPage: 3, wantPages: 3, wantFirst: 50, wantLen: 3},
		{name: "clamped low", page: -2, size: 25, wantPage: 1, wantPages: 3, wantFirst: 0, wantLen: 25},
		{name: "default size", page: 2, size: 0, wantPage: 2, wantPages: 3, wantFirst: 25, wantLen: 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.size)
			if p.Page != tt.wantPage || p.Pages != tt.wantPages || len(p.Items) != tt.wantLen || p.Total != 53 {
				t.Fatalf("Paginate() = page %d/%d len %d total %d", p.Page, p.Pages, len(p.Items), p.Total)
			}
			if p.Items[0] != tt.wantFirst {
				t.Errorf("first item = %d, want %d", p.Items[0], tt.wantFirst)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]string{}, 4, 10)
	if p.Page != 1 || p.Pages != 1 || len(p.Items) != 0 {
		t.Errorf("Paginate(empty) = %+v", p)
	}
}
