package events

// Event type constants.
const (
	TypeDeckUpdated       = "deck:updated"
	TypeDeckSaved         = "deck:saved"
	TypeAssemblyStage     = "assembly:stage"
	TypeAssemblyCompleted = "assembly:completed"
	TypeAssemblyFailed    = "assembly:failed"
	TypeCardsResolved     = "cards:resolved"
	TypeDeckFileDetected  = "watcher:deck-detected"
)

// DeckUpdatedEvent is the payload for deck:updated events.
type DeckUpdatedEvent struct {
	Name          string `json:"name"`
	MainDeckCount int    `json:"mainDeckCount"`
	HasCommander  bool   `json:"hasCommander"`
}

// DeckSavedEvent is the payload for deck:saved events.
type DeckSavedEvent struct {
	DeckID       string `json:"deckId"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	PayloadChars int    `json:"payloadChars"`
}

// AssemblyStageEvent is the payload for assembly:stage events,
// sent on every stage transition of the deck assembly pipeline.
type AssemblyStageEvent struct {
	Stage string `json:"stage"`
}

// AssemblyCompletedEvent is the payload for assembly:completed events.
type AssemblyCompletedEvent struct {
	DeckName      string `json:"deckName"`
	MainDeckCount int    `json:"mainDeckCount"`
	Replacements  int    `json:"replacements"` // Cards swapped during violation fixing
	BasicFills    int    `json:"basicFills"`   // Basic lands added to reach the target
}

// AssemblyFailedEvent is the payload for assembly:failed events.
type AssemblyFailedEvent struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// CardsResolvedEvent is the payload for cards:resolved events, sent
// after a batch name resolution pass.
type CardsResolvedEvent struct {
	Requested  int `json:"requested"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
}

// DeckFileDetectedEvent is the payload for watcher:deck-detected
// events, sent when the directory watcher sees a deck list change.
type DeckFileDetectedEvent struct {
	Path string `json:"path"`
}
