package classify_test

import (
	"testing"

	"camsort/internal/classify"
	"camsort/internal/config"
	"camsort/internal/errors"
	"camsort/internal/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownModels(t *testing.T) {
	resolver := classify.NewModelResolver(config.New().Cameras)

	cases := map[string]string{
		"HERO7 White":             "Gopro Hero7 White",
		"Canon EOS 650D":          "Canon EOS 650D",
		"DMC-TZ57":                "Panasonic DCM-TZ57",
		"WB30F":                   "Samsung WB30F",
		"WB30F/WB31F/WB32F":       "Samsung WB30F",
		"DV300 / DV300F / DV305F": "Samsung DV300F",
	}
	for raw, want := range cases {
		folder, err := resolver.Resolve("img.jpg", metadata.Tags{metadata.TagModel: raw})
		require.NoError(t, err, "tag %q", raw)
		assert.Equal(t, want, folder, "tag %q", raw)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	resolver := classify.NewModelResolver(config.New().Cameras)
	tags := metadata.Tags{metadata.TagModel: "ILCE-6000"}

	first, err := resolver.Resolve("a.jpg", tags)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := resolver.Resolve("a.jpg", tags)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveNoTag(t *testing.T) {
	resolver := classify.NewModelResolver(config.New().Cameras)

	_, err := resolver.Resolve("img.jpg", metadata.Tags{})
	assert.True(t, errors.IsNoModelTag(err))

	// Whitespace-only tags count as absent.
	_, err = resolver.Resolve("img.jpg", metadata.Tags{metadata.TagModel: "   "})
	assert.True(t, errors.IsNoModelTag(err))
}

func TestResolveUnmappedModel(t *testing.T) {
	resolver := classify.NewModelResolver(config.New().Cameras)

	_, err := resolver.Resolve("img.jpg", metadata.Tags{metadata.TagModel: "Unknown Camera X"})
	assert.True(t, errors.IsUnmappedModel(err))
	assert.Contains(t, err.Error(), "Unknown Camera X")
}

func TestResolveSanitizesFolderNames(t *testing.T) {
	resolver := classify.NewModelResolver(map[string]string{
		"Weird/Cam": `Weird/Cam:Pro?`,
	})

	folder, err := resolver.Resolve("img.jpg", metadata.Tags{metadata.TagModel: "Weird/Cam"})
	require.NoError(t, err)
	assert.Equal(t, "Weird_Cam_Pro_", folder)
}

func TestSanitizeFolderName(t *testing.T) {
	assert.Equal(t, `a_b_c_d_e_f_g_h_i_`, classify.SanitizeFolderName(`a<b>c:d"e/f\g|h?i*`))
	assert.Equal(t, "Gopro Hero7 White", classify.SanitizeFolderName("Gopro Hero7 White"))
}
