package repository

import "testing"

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "valid values pass through", page: 3, pageSize: 25, wantPage: 3, wantPageSize: 25},
		{name: "zero page defaults", page: 0, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "negative page defaults", page: -5, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "zero page size defaults", page: 1, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{name: "negative page size defaults", page: 1, pageSize: -1, wantPage: 1, wantPageSize: 10},
		{name: "oversized page size is capped", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
		{name: "cap boundary passes through", page: 1, pageSize: 100, wantPage: 1, wantPageSize: 100},
	}

	for _, tt := range tests {
		page, pageSize := NormalizePagination(tt.page, tt.pageSize)
		if page != tt.wantPage || pageSize != tt.wantPageSize {
			t.Fatalf("%s: NormalizePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.name, tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{total: 0, pageSize: 10, want: 0},
		{total: -3, pageSize: 10, want: 0},
		{total: 1, pageSize: 10, want: 1},
		{total: 10, pageSize: 10, want: 1},
		{total: 11, pageSize: 10, want: 2},
		{total: 100, pageSize: 10, want: 10},
		{total: 101, pageSize: 10, want: 11},
		{total: 7, pageSize: 3, want: 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestPaginationOffset(t *testing.T) {
	if got := paginationOffset(1, 10); got != 0 {
		t.Fatalf("expected first page to start at offset 0, got %d", got)
	}
	if got := paginationOffset(4, 25); got != 75 {
		t.Fatalf("paginationOffset(4, 25) = %d, want 75", got)
	}
}
