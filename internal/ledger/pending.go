package ledger

import "fmt"

// pendingLog holds the records applied since the last settlement, ordered by
// ascending id. Submission assigns strictly increasing ids, so a plain append
// preserves the order.
type pendingLog struct {
	records []*record
}

func (p *pendingLog) push(r *record) {
	p.records = append(p.records, r)
}

// remove deletes the record with the given id. Asking for an id that is not
// pending is a programmer error and reported as ErrNotPending.
func (p *pendingLog) remove(id int) error {
	for i, r := range p.records {
		if r.id == id {
			p.records = append(p.records[:i], p.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotPending, id)
}

func (p *pendingLog) empty() bool {
	return len(p.records) == 0
}

// drainIDs removes every record and returns their ids, ascending. Used when
// all pending transactions are confirmed survivors of a settlement.
func (p *pendingLog) drainIDs() []int {
	ids := make([]int, len(p.records))
	for i, r := range p.records {
		ids[i] = r.id
	}
	p.records = nil
	return ids
}
