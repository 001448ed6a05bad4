package widgets

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/widget"
)

// TextBlock displays one run of text, wrapping never: lines are taken
// as given. Write the text key to change it after building
type TextBlock struct {
	Text   string
	Class  string
	HAlign core.Alignment
	Margin core.Thickness
}

func (t TextBlock) Build(bc *widget.BuildContext) core.Entity {
	e := bc.CreateEntity()
	store := bc.Store()
	property.Set(store, e, widget.KeyTypeName, "text-block")
	property.Set(store, e, widget.KeyText, t.Text)
	if t.Class != "" {
		property.Set(store, e, widget.KeyClasses, []string{t.Class})
	}
	if t.HAlign != core.AlignStart {
		property.Set(store, e, widget.KeyHAlign, t.HAlign)
	}
	if t.Margin != (core.Thickness{}) {
		property.Set(store, e, widget.KeyMargin, t.Margin)
	}
	return e
}
