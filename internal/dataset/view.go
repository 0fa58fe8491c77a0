package dataset

// Products lists distinct product identifiers in first-seen order.
// It is empty when the dataset has no product column.
func (d *Dataset) Products() []string {
	if !d.Schema.Has(FieldProduct) {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for i := range d.Reviews {
		id := d.Reviews[i].ProductID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ForProduct returns a new view holding only the reviews of product id.
// An empty or unknown id, or a dataset without a product column, yields a
// view over the full set. The receiver is never modified.
func (d *Dataset) ForProduct(id string) *Dataset {
	view := &Dataset{
		Name:     d.Name,
		Header:   d.Header,
		Schema:   d.Schema,
		Warnings: d.Warnings,
	}
	if id == "" || !d.Schema.Has(FieldProduct) {
		view.Reviews = d.Reviews[:len(d.Reviews):len(d.Reviews)]
		return view
	}
	var picked []Review
	for i := range d.Reviews {
		if d.Reviews[i].ProductID == id {
			picked = append(picked, d.Reviews[i])
		}
	}
	if picked == nil {
		view.Reviews = d.Reviews[:len(d.Reviews):len(d.Reviews)]
		return view
	}
	view.Reviews = picked
	view.Product = id
	return view
}
