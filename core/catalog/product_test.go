package catalog_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/core/catalog"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestClampQuantity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, catalog.ClampQuantity(0, 5))
	assert.Equal(t, 3, catalog.ClampQuantity(3, 5))
	assert.Equal(t, 5, catalog.ClampQuantity(9, 5))
	assert.Equal(t, 1, catalog.ClampQuantity(2, 0))
}

func TestValidateImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ct   string
		size int
		err  error
	}{
		{"png", "image/png", 1024, nil},
		{"jpg alias", "image/jpg", 1024, nil},
		{"jpeg", "image/jpeg", catalog.MaxImageSize, nil},
		{"webp", "image/webp", 10, nil},
		{"gif", "image/gif", 10, catalog.ErrImageType},
		{"too large", "image/png", catalog.MaxImageSize + 1, catalog.ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := catalog.ValidateImage(tt.ct, tt.size)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewImage(t *testing.T) {
	t.Parallel()

	img := catalog.NewImage("photo.bin", pngHeader)
	assert.Equal(t, "image/png", img.ContentType)
	assert.NoError(t, img.Validate())

	img = catalog.NewImage("photo.webp", []byte("plain text"))
	assert.Equal(t, "image/webp", img.ContentType)

	img = catalog.NewImage("notes.txt", []byte("plain text"))
	assert.ErrorIs(t, img.Validate(), catalog.ErrImageType)

	big := catalog.NewImage("big.png", append(bytes.Clone(pngHeader), make([]byte, catalog.MaxImageSize)...))
	assert.ErrorIs(t, big.Validate(), catalog.ErrImageTooLarge)
}

func TestProductInput_Validate(t *testing.T) {
	t.Parallel()

	valid := catalog.ProductInput{Name: "Lamp", Price: decimal.RequireFromString("10.00"), Stock: 3}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.Validate(), catalog.ErrInvalidProduct)

	negative := valid
	negative.Price = decimal.RequireFromString("-1")
	assert.ErrorIs(t, negative.Validate(), catalog.ErrInvalidProduct)

	badImage := valid
	badImage.Image = &catalog.Image{Filename: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")}
	assert.ErrorIs(t, badImage.Validate(), catalog.ErrImageType)
}

func TestProduct_InStock(t *testing.T) {
	t.Parallel()

	assert.True(t, catalog.Product{Stock: 1}.InStock())
	assert.False(t, catalog.Product{Stock: 0}.InStock())
}
