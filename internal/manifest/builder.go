package manifest

import (
	"errors"
	"fmt"

	"github.com/oshokin/tp-plugin-build/internal/version"
)

const (
	// pluginFolder is expanded by the host to its plugins directory.
	pluginFolder = "%TP_PLUGIN_FOLDER%"
	// defaultLanguage is the language tag of action line sets.
	defaultLanguage = "default"
)

var (
	// ErrDuplicateID is returned by Finalize when an identifier is used twice in the same namespace.
	ErrDuplicateID = errors.New("duplicate identifier")
	// ErrUnknownCategory is returned by Finalize when a record referenced a category that was never added.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrFinalized is returned when records are added after Finalize.
	ErrFinalized = errors.New("manifest already finalized")
	// errNoCategories is returned when an action is added before any category exists.
	errNoCategories = errors.New("no categories defined")
)

// Config is the immutable input of a Builder.
type Config struct {
	// PluginID prefixes every identifier.
	PluginID string
	// StatePrefix is shown in front of descriptions and event formats.
	StatePrefix string
	// SystemName is the plugin folder and binary name.
	SystemName string
	// ShortName is the display name of the plugin and of its first category.
	ShortName string
	// Description and HomepageURL make up the settings description.
	Description string
	HomepageURL string
	// VersionString is the human-readable version shown in the settings description.
	VersionString string
	// Version is the packed version number.
	Version version.PluginVersion
	// DevMode omits the start commands so the plugin binary can be run separately.
	DevMode bool
	// Appearance holds the colors and parent category of the plugin.
	Appearance Configuration
}

// IconPath returns the host path of the plugin icon.
func (c Config) IconPath() string {
	return pluginFolder + c.SystemName + "/tp_icon.png"
}

// StateSpec declares a state.
type StateSpec struct {
	ID          string
	Description string
	Default     string
	// Choices turns the state into a choice state when non-nil.
	Choices []string
}

// EventSpec declares an event.
type EventSpec struct {
	ID     string
	Name   string
	Format string
	// StateID binds the event to a state; empty for none.
	StateID     string
	LocalStates []LocalState
	// Choices turns the event value into a choice when non-nil.
	Choices []string
}

// ActionSpec declares a single-line action. Format placeholders {N} refer to Data[N].
type ActionSpec struct {
	// Category is the category key; empty selects the first category.
	Category    string
	ID          string
	Name        string
	Description string
	Format      string
	Data        []DataField
	Hold        bool
}

// LinesActionSpec declares a multi-line action. Each line is formatted against Data.
type LinesActionSpec struct {
	Category    string
	ID          string
	Name        string
	Description string
	Lines       []string
	Data        []DataField
	Hold        bool
}

// ConnectorSpec declares a connector.
type ConnectorSpec struct {
	Category    string
	ID          string
	Name        string
	Description string
	Format      string
	Data        []DataField
}

// Builder accumulates manifest records in call order.
// It is not safe for concurrent use.
type Builder struct {
	cfg        Config
	doc        Document
	categories map[string]int
	errs       []error
	finalized  bool
}

// NewBuilder creates a builder with the root document filled from cfg.
func NewBuilder(cfg Config) *Builder {
	doc := Document{
		API:           API,
		Version:       cfg.Version.ManifestNumber(),
		Name:          cfg.ShortName,
		ID:            cfg.PluginID,
		Configuration: cfg.Appearance,
		SettingsDescription: cfg.Description +
			" For more details please visit the plugin's home page at: " + cfg.HomepageURL + "\n" +
			"Plugin Version: " + cfg.VersionString,
		Settings:   []Setting{},
		Categories: []Category{},
	}

	if !cfg.DevMode {
		doc.PluginStartCmd = "sh " + pluginFolder + cfg.SystemName + "/start.sh"
		doc.PluginStartCmdWindows = `"` + pluginFolder + cfg.SystemName + "/bin/" + cfg.SystemName + `"`
	}

	return &Builder{
		cfg:        cfg,
		doc:        doc,
		categories: make(map[string]int),
	}
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// ID returns the plugin-namespaced identifier "<pluginId>.<kind>.<id>".
func (b *Builder) ID(kind, id string) string {
	return b.cfg.PluginID + "." + kind + "." + id
}

// AddCategory appends a category identified by key. The name defaults to the plugin short name.
func (b *Builder) AddCategory(key, name string) {
	if !b.writable() {
		return
	}

	if _, ok := b.categories[key]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: category %q", ErrDuplicateID, b.ID("cat", key)))
		return
	}

	if name == "" {
		name = b.cfg.ShortName
	}

	b.categories[key] = len(b.doc.Categories)
	b.doc.Categories = append(b.doc.Categories, Category{
		ID:         b.ID("cat", key),
		Name:       name,
		ImagePath:  b.cfg.IconPath(),
		States:     []State{},
		Actions:    []Action{},
		Connectors: []Connector{},
		Events:     []Event{},
	})
}

// AddSwitchSetting appends an on/off setting.
func (b *Builder) AddSwitchSetting(name string, on bool, tooltip string) {
	if !b.writable() {
		return
	}

	setting := Setting{
		Name:    name,
		Type:    TypeSwitch,
		Default: "off",
	}
	if on {
		setting.Default = "on"
	}

	if tooltip != "" {
		setting.Tooltip = &Tooltip{Body: tooltip}
	}

	b.doc.Settings = append(b.doc.Settings, setting)
}

// AddState appends a state to the category with the given key.
func (b *Builder) AddState(category string, spec StateSpec) {
	cat := b.category(category)
	if cat == nil {
		return
	}

	state := State{
		ID:          b.ID("state", spec.ID),
		Type:        TypeText,
		Description: spec.Description,
		Default:     spec.Default,
	}

	if spec.Choices != nil {
		state.ValueChoices = listOf(spec.Choices)
		state.Type = TypeChoice
	}

	cat.States = append(cat.States, state)
}

// AddEvent appends an event to the category with the given key.
func (b *Builder) AddEvent(category string, spec EventSpec) {
	cat := b.category(category)
	if cat == nil {
		return
	}

	event := Event{
		ID:        b.ID("event", spec.ID),
		Name:      spec.Name,
		Format:    b.prefixed(spec.Format),
		Type:      TypeCommunicate,
		ValueType: TypeText,
	}

	if spec.StateID != "" {
		event.ValueStateID = b.ID("state", spec.StateID)
	}

	if spec.Choices != nil {
		event.ValueChoices = listOf(spec.Choices)
		event.ValueType = TypeChoice
	}

	if spec.LocalStates != nil {
		event.LocalStates = append([]LocalState(nil), spec.LocalStates...)
	}

	cat.Events = append(cat.Events, event)
}

// AddAction appends a single-line action. The format is resolved against the
// declared data before the version field is appended.
func (b *Builder) AddAction(spec ActionSpec) {
	cat := b.category(spec.Category)
	if cat == nil {
		return
	}

	hold := spec.Hold
	action := Action{
		ID:                   b.ID("act", spec.ID),
		Prefix:               b.cfg.StatePrefix,
		Name:                 spec.Name,
		Type:                 TypeCommunicate,
		TryInline:            true,
		Description:          b.prefixed(spec.Description),
		Format:               FormatTemplate(spec.Format, references(spec.Data)),
		HasHoldFunctionality: &hold,
		Data:                 b.withVersion(spec.ID, spec.Data),
	}

	cat.Actions = append(cat.Actions, action)
}

// AddActionWithLines appends a multi-line action. The prefixed description
// becomes the first line, followed by each formatted template line. Hold
// actions repeat the same lines for the press-and-hold interaction.
func (b *Builder) AddActionWithLines(spec LinesActionSpec) {
	cat := b.category(spec.Category)
	if cat == nil {
		return
	}

	refs := references(spec.Data)

	lines := make([]LineFormat, 0, len(spec.Lines)+1)
	lines = append(lines, LineFormat{LineFormat: b.prefixed(spec.Description)})

	for _, line := range spec.Lines {
		lines = append(lines, LineFormat{LineFormat: FormatTemplate(line, refs)})
	}

	actionLines := &ActionLines{
		Action: []LineSet{{Language: defaultLanguage, Data: lines}},
	}

	if spec.Hold {
		actionLines.OnHold = []LineSet{{Language: defaultLanguage, Data: append([]LineFormat(nil), lines...)}}
	}

	cat.Actions = append(cat.Actions, Action{
		ID:    b.ID("act", spec.ID),
		Name:  spec.Name,
		Type:  TypeCommunicate,
		Lines: actionLines,
		Data:  b.withVersion(spec.ID, spec.Data),
	})
}

// AddConnector appends a connector.
func (b *Builder) AddConnector(spec ConnectorSpec) {
	cat := b.category(spec.Category)
	if cat == nil {
		return
	}

	cat.Connectors = append(cat.Connectors, Connector{
		ID:          b.ID("conn", spec.ID),
		Name:        spec.Name,
		Description: spec.Description,
		Format:      FormatTemplate(spec.Format, references(spec.Data)),
		Data:        b.withVersion(spec.ID, spec.Data),
	})
}

// Finalize validates identifier uniqueness and returns the finished document.
// The builder accepts no further records afterwards.
func (b *Builder) Finalize() (*Document, error) {
	if b.finalized {
		if len(b.errs) > 0 {
			return nil, errors.Join(b.errs...)
		}

		return &b.doc, nil
	}

	b.finalized = true
	b.errs = append(b.errs, validateIDs(&b.doc)...)

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return &b.doc, nil
}

// category returns the category for key, or the first category for an empty key.
// Failures are recorded and reported by Finalize.
func (b *Builder) category(key string) *Category {
	if !b.writable() {
		return nil
	}

	if key == "" {
		if len(b.doc.Categories) == 0 {
			b.errs = append(b.errs, errNoCategories)
			return nil
		}

		return &b.doc.Categories[0]
	}

	index, ok := b.categories[key]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrUnknownCategory, key))
		return nil
	}

	return &b.doc.Categories[index]
}

func (b *Builder) writable() bool {
	if b.finalized {
		b.errs = append(b.errs, ErrFinalized)
		return false
	}

	return true
}

func (b *Builder) prefixed(s string) string {
	return b.cfg.StatePrefix + ": " + s
}

// withVersion copies data and appends the "<id>.version" number field holding the packed version.
func (b *Builder) withVersion(id string, data []DataField) []DataField {
	fields := make([]DataField, 0, len(data)+1)
	for _, d := range data {
		fields = append(fields, clone(d))
	}

	return append(fields, b.field(id+".version", TypeNumber, "v", uint32(b.cfg.Version)))
}

// validateIDs reports every identifier that appears more than once in its namespace.
func validateIDs(doc *Document) []error {
	var (
		errs    []error
		seen    = make(map[string]struct{})
		observe = func(kind, id string) {
			key := kind + "\x00" + id
			if _, ok := seen[key]; ok {
				errs = append(errs, fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id))
				return
			}

			seen[key] = struct{}{}
		}
		fields = func(owner string, data []DataField) {
			local := make(map[string]struct{}, len(data))
			for _, d := range data {
				if _, ok := local[d.ID]; ok {
					errs = append(errs, fmt.Errorf("%w: data field %q in %q", ErrDuplicateID, d.ID, owner))
					continue
				}

				local[d.ID] = struct{}{}
			}
		}
	)

	for _, cat := range doc.Categories {
		for _, s := range cat.States {
			observe("state", s.ID)
		}

		for _, e := range cat.Events {
			observe("event", e.ID)
		}

		for _, a := range cat.Actions {
			observe("action", a.ID)
			fields(a.ID, a.Data)
		}

		for _, c := range cat.Connectors {
			observe("action", c.ID)
			fields(c.ID, c.Data)
		}
	}

	return errs
}
