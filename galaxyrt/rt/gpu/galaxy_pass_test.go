package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGalaxyRenderPass_ReleasePartial(t *testing.T) {
	// Construction failures release whatever was created so far.
	p := &GalaxyRenderPass{InstanceCount: 12}
	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.InstanceCount)
	assert.NotPanics(t, p.Release, "release is idempotent")
}
