package messaging

// ChangeTopic names one replicated event stream.
type ChangeTopic string

const (
	FacetSavedTopic      ChangeTopic = "facet_saved"
	FacetDeletedTopic    ChangeTopic = "facet_deleted"
	SettingsChangedTopic ChangeTopic = "settings_changed"
)

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}

type FacetDeleted struct {
	Id int64 `json:"id"`
}
