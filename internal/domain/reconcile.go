package domain

// ReconcileInput is the immutable snapshot a save works from.
type ReconcileInput struct {
	EventID      int64
	Original     *Event
	Draft        *Event
	Photo        *Upload
	CoOrganizers ChangeSet[CoOrganizer]
	Attributes   ChangeSet[Attribute]
}

// Operations is the number of remote calls the input will issue at most.
func (in ReconcileInput) Operations() int {
	return 1 + in.CoOrganizers.Len() + in.Attributes.Len()
}

// CollectionResult splits a collection's operations into those the upstream
// store accepted and those still to do.
type CollectionResult[T any] struct {
	Applied ChangeSet[T]
	Pending ChangeSet[T]
}

// ReconcileResult is the full report of one save.
type ReconcileResult struct {
	Outcome      Outcome
	Event        *Event // server record; nil when the event step failed
	CoOrganizers CollectionResult[CoOrganizer]
	Attributes   CollectionResult[Attribute]
	// Remap maps temporary attribute ids to the durable ids assigned upstream.
	Remap map[int64]int64
}
