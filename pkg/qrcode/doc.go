// Package qrcode renders content into QR code images.
//
// It wraps github.com/skip2/go-qrcode with input validation and a DataURI
// helper producing a data:image/png;base64 payload that can be embedded
// directly into an <img> tag, which is how provisioning flows ship the QR
// code to the browser.
package qrcode
