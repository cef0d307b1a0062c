package domain

// FieldMap holds the detected column name for each semantic role.
// An empty string means the role was not detected. Only the wallet role is
// mandatory; the others degrade downstream features to documented defaults.
type FieldMap struct {
	Wallet    string
	Action    string
	Timestamp string
	Asset     string
}

// HasAction reports whether an action column was detected.
func (m FieldMap) HasAction() bool { return m.Action != "" }

// HasTimestamp reports whether a timestamp column was detected.
func (m FieldMap) HasTimestamp() bool { return m.Timestamp != "" }

// HasAsset reports whether an asset column was detected.
func (m FieldMap) HasAsset() bool { return m.Asset != "" }
