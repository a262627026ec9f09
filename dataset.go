package gridplot

// A Dataset is an ordered list of arbitrary records together with free-form
// metadata. Plots observe a Dataset: every mutation through SetData or
// SetMetadata notifies all subscribers.
type Dataset struct {
	data      []any
	metadata  any
	listeners CallbackSet[func(*Dataset)]
}

// NewDataset returns a Dataset holding data and metadata.
func NewDataset(data []any, metadata any) *Dataset {
	return &Dataset{data: data, metadata: metadata}
}

// Records is a convenience to build a Dataset from maps.
func Records(records ...map[string]any) *Dataset {
	data := make([]any, len(records))
	for i, r := range records {
		data[i] = r
	}
	return NewDataset(data, nil)
}

// Data returns the records of d.
func (d *Dataset) Data() []any { return d.data }

// Len returns the number of records in d.
func (d *Dataset) Len() int { return len(d.data) }

// SetData replaces the records of d and notifies the subscribers.
func (d *Dataset) SetData(data []any) {
	d.data = data
	d.broadcast()
}

// Metadata returns the metadata of d.
func (d *Dataset) Metadata() any { return d.metadata }

// SetMetadata replaces the metadata of d and notifies the subscribers.
func (d *Dataset) SetMetadata(m any) {
	d.metadata = m
	d.broadcast()
}

// OnUpdate subscribes cb to mutations of d.
func (d *Dataset) OnUpdate(cb func(*Dataset)) Subscription {
	return d.listeners.Add(cb)
}

// OffUpdate removes the subscription s. Unknown subscriptions are ignored.
func (d *Dataset) OffUpdate(s Subscription) {
	d.listeners.Remove(s)
}

func (d *Dataset) broadcast() {
	d.listeners.Each(func(cb func(*Dataset)) { cb(d) })
}
