package validator

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func base64String(length int) string {
	arr := make([]byte, length)
	for i := range arr {
		arr[i] = 'a'
	}
	return base64.StdEncoding.EncodeToString(arr)
}

func TestPhotoSize(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidatePhotoSize(len(base64String(MaxPhotoBytes))), "max size should work")
	})

	t.Run("ValidSmall", func(t *testing.T) {
		assert.True(t, ValidatePhotoSize(len(base64String(10))), "small size should work")
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.False(t, ValidatePhotoSize(len(base64String(MaxPhotoBytes+100))), "too big")
	})
}
