package integrity

import (
	"testing"

	"farm-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	// Pass nil db for this test as we don't access it unless we use the service
	feature := NewFeature(Deps{Client: new(mocks.Client), Bucket: "farm-stock"}, zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
