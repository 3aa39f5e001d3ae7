package news

import (
	"strings"
	"testing"
)

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "br markers",
			in:   "erste Zeile &br;zweite Zeile",
			want: "erste Zeile<br>zweite Zeile",
		},
		{
			name: "html entities",
			in:   "Gr&uuml;n &amp; Wei&szlig;",
			want: "Grün & Weiß",
		},
		{
			name: "bbcode url",
			in:   "[url=http://example.org/spiel]Bericht[/url]",
			want: `<a href="https://example.org/spiel" target="_blank" rel="noopener">Bericht</a>`,
		},
		{
			name: "bbcode bare url",
			in:   "[url]http://example.org[/url]",
			want: `<a href="https://example.org" target="_blank" rel="noopener">http://example.org</a>`,
		},
		{
			name: "bbcode img",
			in:   "[img]http://example.org/foto.jpg[/img]",
			want: `<img src="https://example.org/foto.jpg" alt="">`,
		},
		{
			name: "bbcode formatting",
			in:   "[b]fett[/b] und [i]kursiv[/i] und [u]unterstrichen[/u]",
			want: "<strong>fett</strong> und <em>kursiv</em> und <u>unterstrichen</u>",
		},
		{
			name: "bbcode color",
			in:   "[color=red]Abstieg[/color]",
			want: `<span style="color:red;">Abstieg</span>`,
		},
		{
			name: "script stripped",
			in:   `vorher <script>alert(1)</script> nachher`,
			want: "vorher alert(1) nachher",
		},
		{
			name: "font becomes span",
			in:   `<font color="#ff0000">rot</font>`,
			want: `<span style="color:#ff0000;">rot</span>`,
		},
		{
			name: "font without color",
			in:   `<font size="2">text</font>`,
			want: "<span>text</span>",
		},
		{
			name: "event handler stripped",
			in:   `<a href="x" onclick="evil()">link</a>`,
			want: `<a href="x">link</a>`,
		},
		{
			name: "javascript href neutralized",
			in:   `<a href="javascript:evil()">link</a>`,
			want: `<a href="#">link</a>`,
		},
		{
			name: "whitespace collapsed",
			in:   "viel    Platz  hier",
			want: "viel Platz hier",
		},
		{
			name: "break runs collapsed",
			in:   "oben<br><br><br><br>unten",
			want: "oben<br><br>unten",
		},
		{
			name: "trimmed",
			in:   "   mitte   ",
			want: "mitte",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanContent(tt.in); got != tt.want {
				t.Errorf("CleanContent(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanContentNeverEmitsScript(t *testing.T) {
	inputs := []string{
		`<SCRIPT src="http://evil">x</SCRIPT>`,
		`<iframe src="x"></iframe>`,
		`<object data="x"></object>`,
		`[url=javascript:alert(1)]klick[/url]`,
	}
	for _, in := range inputs {
		got := strings.ToLower(CleanContent(in))
		if strings.Contains(got, "<script") || strings.Contains(got, "<iframe") || strings.Contains(got, "<object") {
			t.Errorf("dangerous markup survived: %q -> %q", in, got)
		}
	}
}

func TestUpgradeScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://example.org", "https://example.org"},
		{"HTTP://example.org", "https://example.org"},
		{"https://example.org", "https://example.org"},
		{"/relativ", "/relativ"},
	}
	for _, tt := range tests {
		if got := upgradeScheme(tt.in); got != tt.want {
			t.Errorf("upgradeScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
