package validator

import (
	"encoding/base64"
)

const MaxPhotoBytes = 1 << 21

// ensure the data length is less than the maximum base64 length for a given length without decoding the base64
func validateBase64Len(dataLen int, length int) bool {
	return dataLen <= base64.StdEncoding.EncodedLen(length)
}

// ensures an encoded judge photo is less than the maximum allowable photo size
func ValidatePhotoSize(dataLen int) bool {
	return validateBase64Len(dataLen, MaxPhotoBytes)
}
