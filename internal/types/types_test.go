package types

import (
	"encoding/json"
	"testing"
)

func TestFlexStringUnmarshal(t *testing.T) {
	var form map[string]FlexString
	payload := `{"name":" Jane ","qty":1500,"ok":true,"none":null,"tags":["a",2,null],"meta":{"a": 1}}`
	if err := json.Unmarshal([]byte(payload), &form); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	expected := map[string]string{
		"name": "Jane",
		"qty":  "1500",
		"ok":   "true",
		"none": "",
		"tags": "a, 2",
		"meta": `{"a":1}`,
	}
	for key, want := range expected {
		if got := form[key].String(); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestFlexListUnmarshal(t *testing.T) {
	tests := []struct {
		payload string
		want    []string
	}{
		{`["steel","cnc"]`, []string{"steel", "cnc"}},
		{`"steel, cnc ,"`, []string{"steel", "cnc"}},
		{`null`, nil},
	}

	for _, tt := range tests {
		var list FlexList[string]
		if err := json.Unmarshal([]byte(tt.payload), &list); err != nil {
			t.Fatalf("Unmarshal %s failed: %v", tt.payload, err)
		}
		if len(list) != len(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.payload, tt.want, list)
		}
		for i := range tt.want {
			if list[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.payload, tt.want, list)
			}
		}
	}

	var nums FlexList[int]
	if err := json.Unmarshal([]byte(`7`), &nums); err != nil || len(nums) != 1 || nums[0] != 7 {
		t.Errorf("Expected single item list, got %v (%v)", nums, err)
	}

	if got := Join(FlexList[string]{"a", "b"}); got != "a, b" {
		t.Errorf("Unexpected join result %q", got)
	}
}

func TestFlexUint64Unmarshal(t *testing.T) {
	var body struct {
		A FlexUint64 `json:"a"`
		B FlexUint64 `json:"b"`
		C FlexUint64 `json:"c"`
		D FlexUint64 `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":12,"b":"34","c":"","d":null}`), &body); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if body.A.Uint64() != 12 || body.B.Uint64() != 34 || !body.C.IsZero() || !body.D.IsZero() {
		t.Errorf("Unexpected values: %+v", body)
	}

	var bad FlexUint64
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Error("Expected error for non-numeric string")
	}
}

func TestCustomErrorConstructors(t *testing.T) {
	err := NotFound("Submission not found", "admin.submissions")
	if err.Code != 404 || err.Error() != "404: Submission not found [type: admin.submissions]" {
		t.Errorf("Unexpected error: %v", err)
	}
	if BadRequest("x", "y").Code != 400 || Unauthorized("x", "y").Code != 401 {
		t.Error("Unexpected status codes")
	}
}
