package manifest

// TextData creates a text field.
func (b *Builder) TextData(id, label, def string) DataField {
	return b.field(id, TypeText, label, def)
}

// FileData creates a file picker field.
func (b *Builder) FileData(id, label, def string) DataField {
	return b.field(id, TypeFile, label, def)
}

// ChoiceData creates a choice field. An empty def selects the first choice.
// An empty choice list is kept so the plugin can fill it at runtime.
func (b *Builder) ChoiceData(id, label string, choices []string, def string) DataField {
	if def == "" && len(choices) > 0 {
		def = choices[0]
	}

	d := b.field(id, TypeChoice, label, def)
	d.ValueChoices = listOf(choices)

	return d
}

// NumericData creates a number field limited to [minValue, maxValue].
func (b *Builder) NumericData(id, label string, def, minValue, maxValue float64, allowDecimals bool) DataField {
	d := b.field(id, TypeNumber, label, def)
	d.AllowDecimals = &allowDecimals
	d.MinValue = &minValue
	d.MaxValue = &maxValue

	return d
}

func (b *Builder) field(id, typ, label string, def any) DataField {
	return DataField{
		ID:      b.ID("act", id),
		Type:    typ,
		Label:   label,
		Default: def,
	}
}
