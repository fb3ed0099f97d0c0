package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresenterEmptyDiffProducesNoOutput(t *testing.T) {
	p := NewPresenter(Capabilities{TrueColor: true})
	buf := newTestBuffer(5, 5)
	d := ComputeDiff(buf, buf)
	out := p.Present(buf, d)
	require.Nil(t, out)
}

func TestPresenterMovesCursorOnce(t *testing.T) {
	p := NewPresenter(Capabilities{TrueColor: true})
	old := newTestBuffer(5, 1)
	buf := newTestBuffer(5, 1)
	buf.Set(0, 0, FromChar('a'))
	buf.Set(1, 0, FromChar('b'))
	d := ComputeDiff(old, buf)
	out := p.Present(buf, d)
	require.NotEmpty(t, out)
	require.Contains(t, string(out), "\x1b[1;1H")
	require.NotContains(t, string(out), "\x1b[1;2H", "adjacent cell should not need its own CUP")
}

func TestPresenterSkipsRedundantSGR(t *testing.T) {
	p := NewPresenter(Capabilities{TrueColor: true})
	old := newTestBuffer(3, 1)
	buf := newTestBuffer(3, 1)
	pen := EmptyCell().WithFg(RGB(200, 0, 0))
	buf.Set(0, 0, FromChar('a').WithFg(pen.Fg))
	buf.Set(1, 0, FromChar('b').WithFg(pen.Fg))
	d := ComputeDiff(old, buf)
	out := string(p.Present(buf, d))
	count := 0
	for i := 0; i+3 <= len(out); i++ {
		if out[i:i+3] == "38;" {
			count++
		}
	}
	require.Equal(t, 1, count, "identical consecutive pens should emit SGR once")
}

func TestPresenterHyperlinkOpenAndClose(t *testing.T) {
	p := NewPresenter(Capabilities{TrueColor: true, Hyperlinks: true})
	p.SetLinkTable(map[uint32]string{1: "https://example.com"})
	old := newTestBuffer(3, 1)
	buf := newTestBuffer(3, 1)
	buf.Set(0, 0, FromChar('a').WithHyperlink(1))
	buf.Set(1, 0, FromChar('b')) // no link: must close it
	d := ComputeDiff(old, buf)
	out := string(p.Present(buf, d))
	require.Contains(t, out, "\x1b]8;;https://example.com")
	require.Contains(t, out, "\x1b]8;;\x1b\\")
}

func TestPresenterSanitizesControlBytes(t *testing.T) {
	p := NewPresenter(Capabilities{TrueColor: true})
	old := newTestBuffer(3, 1)
	buf := newTestBuffer(3, 1)
	buf.Set(0, 0, FromChar(rune(0x01)))
	d := ComputeDiff(old, buf)
	out := string(p.Present(buf, d))
	require.NotContains(t, out[2:], string(rune(0x01)))
}

func TestPresenterSanitizesTabAndNewline(t *testing.T) {
	p := NewPresenter(Capabilities{TrueColor: true})
	old := newTestBuffer(3, 1)
	buf := newTestBuffer(3, 1)
	buf.Set(0, 0, FromChar('\t'))
	buf.Set(1, 0, FromChar('\n'))
	buf.Set(2, 0, FromChar('\r'))
	d := ComputeDiff(old, buf)
	out := string(p.Present(buf, d))
	require.NotContains(t, out, "\t")
	require.NotContains(t, out, "\n")
	require.NotContains(t, out, "\r")
}

func TestPresenterEmitsIndexedSGRForColors256Terminal(t *testing.T) {
	p := NewPresenter(Capabilities{Colors256: true})
	old := newTestBuffer(2, 1)
	buf := newTestBuffer(2, 1)
	buf.Set(0, 0, FromChar('a').WithFg(RGB(250, 2, 2)))
	d := ComputeDiff(old, buf)
	out := string(p.Present(buf, d))
	require.Contains(t, out, ";38;5;")
	require.NotContains(t, out, ";38;2;")
}

func TestDownsampleNoColorSupportCollapsesToDefault(t *testing.T) {
	c := downsample(RGB(10, 20, 30), Capabilities{})
	require.True(t, c.Default)
}

func TestDownsample256Quantizes(t *testing.T) {
	c := downsample(RGB(250, 2, 2), Capabilities{Colors256: true})
	require.False(t, c.Default)
	require.Equal(t, uint8(255), c.R)
}
