package ports

type ClientStatus struct {
	Name     string   `json:"name"`
	State    string   `json:"state"`
	Channels []string `json:"channels"`
	Attempts int      `json:"attempts"`
}

type StatusPort interface {
	Status() ClientStatus
}
