package avatar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssigner_RotatesPerGender(t *testing.T) {
	a := NewAssigner(map[string][]string{
		"male": {"avatars/m1.png", "avatars/m2.png"},
		"":     {"avatars/n1.png"},
	})

	assert.Equal(t, "avatars/m1.png", a.Assign("male"))
	assert.Equal(t, "avatars/m2.png", a.Assign("Male"))
	assert.Equal(t, "avatars/m1.png", a.Assign("male"))

	// unknown tag falls back to the neutral set
	assert.Equal(t, "avatars/n1.png", a.Assign("other"))
	assert.Equal(t, "avatars/n1.png", a.Assign(""))
}

func TestResolver_NilStoreFallsBack(t *testing.T) {
	r := NewResolver(nil, 0)
	assert.Equal(t, "avatars/m1.png", r.Resolve(context.Background(), "avatars/m1.png"))
	assert.Equal(t, "https://cdn.test/x.png", r.Resolve(context.Background(), "https://cdn.test/x.png"))
	assert.Equal(t, "", r.Resolve(context.Background(), ""))
}
