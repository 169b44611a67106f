package monkeyboard

import "testing"

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		kc   Keycode
		want Kind
	}{
		{"basic low", 0x00, KindBasic},
		{"basic high", BasicKeycodeMax, KindBasic},
		{"modified low", ModifiedKeycodeMin, KindModified},
		{"modified high", ModifiedKeycodeMax, KindModified},
		{"unicode low", UnicodeKeycodeMin, KindUnicode},
		{"unicode high", UnicodeKeycodeMax, KindUnicode},
		{"custom low", CustomKeycodeMin, KindCustom},
		{"custom high", CustomKeycodeMax, KindCustom},
		{"above custom range", CustomKeycodeMax + 1, KindInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := KindOf(c.kc); got != c.want {
				t.Errorf("KindOf(%#x) = %s, want %s", uint32(c.kc), got, c.want)
			}
		})
	}
}

func TestMakeModifiedRoundTrip(t *testing.T) {
	kc := MakeModified(0x04, ModLCTL|ModLSFT)
	if KindOf(kc) != KindModified {
		t.Fatalf("KindOf = %s, want Modified", KindOf(kc))
	}
	if Basic(kc) != 0x04 {
		t.Errorf("Basic() = %#x, want 0x04", Basic(kc))
	}
	if !HasMod(kc, ModLCTL) || !HasMod(kc, ModLSFT) {
		t.Error("expected both LCTL and LSFT set")
	}
	if HasMod(kc, ModRALT) {
		t.Error("RALT should not be set")
	}
}

func TestMakeUnicodeRoundTrip(t *testing.T) {
	kc := MakeUnicode('世')
	if KindOf(kc) != KindUnicode {
		t.Fatalf("KindOf = %s, want Unicode", KindOf(kc))
	}
	if got := Unicode(kc); got != '世' {
		t.Errorf("Unicode() = %q, want %q", got, '世')
	}
}

func TestMakeCustomRoundTrip(t *testing.T) {
	kc := MakeCustom(42)
	if KindOf(kc) != KindCustom {
		t.Fatalf("KindOf = %s, want Custom", KindOf(kc))
	}
	if got := Custom(kc); got != 42 {
		t.Errorf("Custom() = %d, want 42", got)
	}
}

func TestAccessorsReturnZeroForWrongKind(t *testing.T) {
	basic := Keycode(0x04)
	if Unicode(basic) != 0 {
		t.Error("Unicode() of a basic keycode should be 0")
	}
	if Custom(basic) != 0 {
		t.Error("Custom() of a basic keycode should be 0")
	}
	if Modifiers(basic) != 0 {
		t.Error("Modifiers() of a basic (unmodified) keycode should be 0")
	}
	unicode := MakeUnicode('a')
	if Basic(unicode) != 0 {
		t.Error("Basic() of a unicode keycode should be 0")
	}
}
