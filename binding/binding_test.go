package binding

import (
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"artist": map[string]any{"full_name": "Iryna Koval", "height": 168.0},
		"tags":   []any{"aerial", "dance"},
	}
	cases := []struct {
		in   string
		want string
	}{
		{"${artist.full_name}_Castpoint_Profile.pdf", "Iryna Koval_Castpoint_Profile.pdf"},
		{"${ artist.height }cm", "168cm"},
		{"${tags[1]}", "dance"},
		{"${tags[5]}", "${tags[5]}"},
		{"${artist.missing}", "${artist.missing}"},
		{"${artist.full_name.first}", "${artist.full_name.first}"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("data 为空时应原样返回，实际 %q", got)
	}
}

func TestDataFromStruct(t *testing.T) {
	type artist struct {
		FullName string `json:"full_name"`
	}
	type request struct {
		ID     int64  `json:"application_id"`
		Artist artist `json:"artist"`
	}
	data, err := Data(request{ID: 7, Artist: artist{FullName: "Zoë Lane"}})
	if err != nil {
		t.Fatalf("Data 出错: %v", err)
	}
	if got := Interpolate("${artist.full_name}-${application_id}", data); got != "Zoë Lane-7" {
		t.Fatalf("结构体绑定结果不符: %q", got)
	}
	if _, err := Data(func() {}); err == nil {
		t.Fatalf("无法序列化的值应报错")
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${ artist.full_name }_${job.title}.pdf")
	want := []string{"artist.full_name", "job.title"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders = %v, want %v", got, want)
	}
	if got := Placeholders("profile.pdf"); len(got) != 0 {
		t.Fatalf("无占位符时应为空: %v", got)
	}
}
