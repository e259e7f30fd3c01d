package manifest

// API is the Touch Portal plugin API version written into every document.
const API = 10

// Value and field types used by the host.
const (
	TypeText        = "text"
	TypeChoice      = "choice"
	TypeFile        = "file"
	TypeNumber      = "number"
	TypeSwitch      = "switch"
	TypeCommunicate = "communicate"
)

// Document is the root of entry.tp.
type Document struct {
	API                   int           `json:"api"`
	Version               int64         `json:"version"`
	Name                  string        `json:"name"`
	ID                    string        `json:"id"`
	PluginStartCmd        string        `json:"plugin_start_cmd,omitempty"`
	PluginStartCmdWindows string        `json:"plugin_start_cmd_windows,omitempty"`
	Configuration         Configuration `json:"configuration"`
	SettingsDescription   string        `json:"settingsDescription"`
	Settings              []Setting     `json:"settings"`
	Categories            []Category    `json:"categories"`
}

// Configuration holds display colors and the parent grouping in the host UI.
type Configuration struct {
	ColorLight     string `json:"colorLight"`
	ColorDark      string `json:"colorDark"`
	ParentCategory string `json:"parentCategory"`
}

// Setting is a user-facing plugin option.
type Setting struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Default  string   `json:"default"`
	ReadOnly bool     `json:"readOnly"`
	Tooltip  *Tooltip `json:"tooltip,omitempty"`
}

// Tooltip is the help text attached to a setting.
type Tooltip struct {
	Body string `json:"body"`
}

// Category groups states, actions, connectors and events.
type Category struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	ImagePath  string      `json:"imagepath"`
	States     []State     `json:"states"`
	Actions    []Action    `json:"actions"`
	Connectors []Connector `json:"connectors"`
	Events     []Event     `json:"events"`
}

// State is a value slot exposed to the host.
type State struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Description  string    `json:"desc"`
	Default      string    `json:"default"`
	ValueChoices *[]string `json:"valueChoices,omitempty"`
}

// Event is an occurrence notification, optionally carrying local states.
type Event struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Format       string       `json:"format"`
	Type         string       `json:"type"`
	ValueType    string       `json:"valueType"`
	ValueStateID string       `json:"valueStateId"`
	ValueChoices *[]string    `json:"valueChoices,omitempty"`
	LocalStates  []LocalState `json:"localstates,omitempty"`
}

// LocalState is a value delivered along with an event.
type LocalState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Action is an operation the host can invoke. It has either the single-line
// Format shape or the multi-line Lines shape.
type Action struct {
	ID                   string       `json:"id"`
	Prefix               string       `json:"prefix,omitempty"`
	Name                 string       `json:"name"`
	Type                 string       `json:"type"`
	TryInline            bool         `json:"tryInline,omitempty"`
	Description          string       `json:"description,omitempty"`
	Format               string       `json:"format,omitempty"`
	HasHoldFunctionality *bool        `json:"hasHoldFunctionality,omitempty"`
	Lines                *ActionLines `json:"lines,omitempty"`
	Data                 []DataField  `json:"data"`
}

// ActionLines holds the line templates for the press and press-and-hold interactions.
type ActionLines struct {
	Action []LineSet `json:"action"`
	OnHold []LineSet `json:"onhold,omitempty"`
}

// LineSet is one language variant of the action lines.
type LineSet struct {
	Language string       `json:"language"`
	Data     []LineFormat `json:"data"`
}

// LineFormat is a single rendered line.
type LineFormat struct {
	LineFormat string `json:"lineFormat"`
}

// Connector is a live-value binding (slider) the host can read.
type Connector struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Format      string      `json:"format"`
	Data        []DataField `json:"data"`
}

// DataField is a typed parameter of an action or connector.
type DataField struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Label         string    `json:"label"`
	Default       any       `json:"default"`
	ValueChoices  *[]string `json:"valueChoices,omitempty"`
	AllowDecimals *bool     `json:"allowDecimals,omitempty"`
	MinValue      *float64  `json:"minValue,omitempty"`
	MaxValue      *float64  `json:"maxValue,omitempty"`
}

// Choices returns the field's choice list, or nil when it has none.
func (d DataField) Choices() []string {
	if d.ValueChoices == nil {
		return nil
	}

	return *d.ValueChoices
}

// listOf copies values into a non-nil slice so an empty list is still written as [].
func listOf(values []string) *[]string {
	list := make([]string, len(values))
	copy(list, values)

	return &list
}

func clone(d DataField) DataField {
	if d.ValueChoices != nil {
		d.ValueChoices = listOf(*d.ValueChoices)
	}

	return d
}
