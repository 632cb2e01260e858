package index

import (
	"reflect"
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	files := []string{
		"/p/src/test/java/pkg/UserTest.java",
		"/p/src/test/java/pkg/PaymentServiceTest.java",
		"/p/src/test/java/pkg/OrderTests.java",
	}

	filter := NewFilter()

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "empty pattern returns all",
			pattern: "",
			want:    files,
		},
		{
			name:    "glob suffix",
			pattern: "*UserTest.java",
			want:    []string{files[0]},
		},
		{
			name:    "substring with wildcards",
			pattern: "*Payment*",
			want:    []string{files[1]},
		},
		{
			name:    "plain substring",
			pattern: "Order",
			want:    []string{files[2]},
		},
		{
			name:    "no match",
			pattern: "*Missing*",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.FilterByName(files, tt.pattern)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
