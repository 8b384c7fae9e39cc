// FIFO queue with deduplication, so an index never lists a page twice.

package crawl

// Queue is a FIFO queue with link deduplication.
type Queue struct {
	items   []string
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues a link if it hasn't been seen before, and reports whether
// it was added.
func (q *Queue) Add(link string) bool {
	key := NormalizeURL(link)
	if q.visited[key] {
		return false
	}
	q.visited[key] = true
	q.items = append(q.items, link)
	return true
}

// HasNext returns true if there are unprocessed links.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed link and advances the pointer.
func (q *Queue) Next() string {
	link := q.items[q.idx]
	q.idx++
	return link
}

// Visited returns the total number of unique links seen.
func (q *Queue) Visited() int {
	return len(q.visited)
}
