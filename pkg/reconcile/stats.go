package reconcile

// Stats counts what a Renderer did to the live Document.
type Stats struct {
	Created      int // live resources created
	Replaced     int // ReplaceChild calls
	Appended     int // AppendChild calls
	Inserted     int // InsertBefore calls
	Removed      int // RemoveChild calls
	AttrsSet     int
	AttrsRemoved int
	ValuesSet    int
	Listeners    int // AddEventListener calls

	HandlersBound    int // fresh ids registered
	HandlersCarried  int // ids moved into a new closure
	HandlersReleased int // ids deregistered
	Failures         int // live mutations that returned an error
}

// Mutations returns the number of mutating calls issued to the Document.
func (s Stats) Mutations() int {
	return s.Created + s.Replaced + s.Appended + s.Inserted + s.Removed +
		s.AttrsSet + s.AttrsRemoved + s.ValuesSet + s.Listeners
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Created:          s.Created + o.Created,
		Replaced:         s.Replaced + o.Replaced,
		Appended:         s.Appended + o.Appended,
		Inserted:         s.Inserted + o.Inserted,
		Removed:          s.Removed + o.Removed,
		AttrsSet:         s.AttrsSet + o.AttrsSet,
		AttrsRemoved:     s.AttrsRemoved + o.AttrsRemoved,
		ValuesSet:        s.ValuesSet + o.ValuesSet,
		Listeners:        s.Listeners + o.Listeners,
		HandlersBound:    s.HandlersBound + o.HandlersBound,
		HandlersCarried:  s.HandlersCarried + o.HandlersCarried,
		HandlersReleased: s.HandlersReleased + o.HandlersReleased,
		Failures:         s.Failures + o.Failures,
	}
}
