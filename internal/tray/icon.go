package tray

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// icon renders a 16x16 32-bit ICO: a filled disc with two eyes.
func icon() []byte {
	const (
		headerSize = 6 + 16
		dibSize    = 40
		pixelBytes = iconSize * iconSize * 4
		maskBytes  = iconSize * 4 // 1bpp rows padded to 32 bits
		imageSize  = dibSize + pixelBytes + maskBytes
	)

	var b bytes.Buffer
	w := func(v interface{}) { binary.Write(&b, binary.LittleEndian, v) }

	// ICONDIR + one ICONDIRENTRY
	w([]uint16{0, 1, 1})
	w([]uint8{iconSize, iconSize, 0, 0})
	w([]uint16{1, 32})
	w([]uint32{imageSize, headerSize})

	// BITMAPINFOHEADER, height doubled for the AND mask
	w([]uint32{dibSize, iconSize, iconSize * 2})
	w([]uint16{1, 32})
	w([]uint32{0, pixelBytes, 0, 0, 0, 0})

	// Pixel rows are stored bottom-up in BGRA.
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			b.Write(pixel(x, y))
		}
	}
	b.Write(make([]byte, maskBytes))
	return b.Bytes()
}

func pixel(x, y int) []byte {
	dx, dy := 2*x-(iconSize-1), 2*y-(iconSize-1)
	switch {
	case (x == 5 || x == 10) && (y == 5 || y == 6):
		return []byte{0x20, 0x20, 0x20, 0xff}
	case dx*dx+dy*dy <= (iconSize-1)*(iconSize-1):
		return []byte{0x3c, 0xb4, 0xf0, 0xff}
	default:
		return []byte{0, 0, 0, 0}
	}
}
