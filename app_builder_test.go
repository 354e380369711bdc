package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	assert.Len(t, builder.modules, 1)
	assert.False(t, mockModule.installed, "modules install on Build")

	app := builder.Build()
	assert.True(t, mockModule.installed)
	assert.Len(t, app.modules, 1)
}

func TestAppBuilder_InstallOrder(t *testing.T) {
	var order []string
	app := NewAppBuilder().
		UseModule(&MockModule{order: &order, name: "a"}).
		UseModule(&MockModule{order: &order, name: "b"}, &MockModule{order: &order, name: "c"}).
		Build()

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, len(defaultStages), len(app.Stages()))
}
