package chip8

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_DrawSprite(t *testing.T) {
	var fb Framebuffer

	collision := fb.DrawSprite(2, 1, []byte{0xC0, 0x81})
	assert.False(t, collision)
	assert.True(t, fb.Pixel(2, 1))
	assert.True(t, fb.Pixel(3, 1))
	assert.False(t, fb.Pixel(4, 1))
	assert.True(t, fb.Pixel(2, 2))
	assert.True(t, fb.Pixel(9, 2))
	assert.Equal(t, 4, fb.Lit())
}

func TestFramebuffer_XORRestoresState(t *testing.T) {
	var fb Framebuffer
	fb.DrawSprite(40, 10, []byte{0x3C})
	before := fb

	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}
	assert.False(t, fb.DrawSprite(20, 5, sprite))
	assert.True(t, fb.DrawSprite(20, 5, sprite))

	if diff := cmp.Diff(before.rows, fb.rows); diff != "" {
		t.Errorf("framebuffer mismatch (-want +got):\n%s", diff)
	}
}

func TestFramebuffer_Wraparound(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(60, 31, []byte{0xFF, 0x80})
	for x := 60; x < 64; x++ {
		assert.True(t, fb.Pixel(x, 31))
	}
	for x := range 4 {
		assert.True(t, fb.Pixel(x, 31))
	}
	assert.True(t, fb.Pixel(60, 0))
	assert.True(t, fb.Pixel(-4, -1))
	assert.Equal(t, 9, fb.Lit())
}

func TestFramebuffer_Clear(t *testing.T) {
	var fb Framebuffer
	fb.DrawSprite(0, 0, []byte{0xFF, 0xFF})

	fb.Clear()
	assert.Equal(t, 0, fb.Lit())
	assert.Equal(t, uint64(0), fb.Row(0))
}
