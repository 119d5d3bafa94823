package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data string
		want Callback
		ok   bool
	}{
		{"nav:cats", Callback{Scope: "nav", Action: "cats"}, true},
		{"cat:open:1", Callback{Scope: "cat", Action: "open", ID: 1, HasID: true}, true},
		{"task_proc:open:2", Callback{Scope: "task_proc", Action: "open", ID: 2, HasID: true}, true},
		{"prod:del_yes:42", Callback{Scope: "prod", Action: "del_yes", ID: 42, HasID: true}, true},
		{"cat:open:-1", Callback{}, false},
		{"cat:open:+1", Callback{}, false},
		{"cat:open:x", Callback{}, false},
		{"cat:open:", Callback{}, false},
		{"cat", Callback{}, false},
		{"", Callback{}, false},
		{"a:b:1:2", Callback{}, false},
		{":open", Callback{}, false},
		{"cat:open:99999999999999999999", Callback{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := ParseCallback(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallbackString_RoundTrips(t *testing.T) {
	for _, data := range []string{"nav:cats", "task:done:9", cbID(scopeProduct, "qty", 3), cb(scopeCategory, "add")} {
		c, ok := ParseCallback(data)
		assert.True(t, ok)
		assert.Equal(t, data, c.String())
	}
}
