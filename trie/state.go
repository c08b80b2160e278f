package trie

// MaxOrder bounds the sentence-scoring state's back-off buffers, per
// spec.md §9 design notes ("previous/current back-off buffers of size
// max_order=8").
const MaxOrder = 8

// wordRing is a bounded circular queue of word ids, capacity order-1, per
// spec.md §4.7/§5 ("a bounded circular queue of capacity order-1"). It
// backs State's word history, kept as its own small stateful type rather
// than inlined index arithmetic, matching the teacher's habit of giving
// such helpers their own type.
type wordRing struct {
	words    []uint64
	writePos int
	length   int
}

// newWordRing returns an empty ring of the given capacity.
func newWordRing(capacity int) wordRing {
	return wordRing{words: make([]uint64, capacity)}
}

// reset empties the ring.
func (r *wordRing) reset() {
	for i := range r.words {
		r.words[i] = 0
	}
	r.writePos = 0
	r.length = 0
}

// push appends id as the most recent word, evicting the oldest once the
// ring is at capacity.
func (r *wordRing) push(id uint64) {
	cap := len(r.words)
	if cap == 0 {
		return
	}
	r.words[r.writePos%cap] = id
	r.writePos++
	if r.length < cap {
		r.length++
	}
}

// at returns the id of the word m positions back (1 = most recent), valid
// for m in [1, r.length].
func (r *wordRing) at(m int) uint64 {
	cap := len(r.words)
	idx := (r.writePos - m) % cap
	if idx < 0 {
		idx += cap
	}
	return r.words[idx]
}

// State is the per-sentence scoring state threaded through successive
// ProbModel.Score calls, per spec.md §5's state machine (empty,
// in-sentence, end-of-line).
type State struct {
	order int

	history wordRing
	length  int

	prevBackoff [MaxOrder]float32
	currBackoff [MaxOrder]float32

	oov int
}

// NewState returns an empty state for a model of the given order.
func NewState(order int) *State {
	return &State{order: order, history: newWordRing(order - 1)}
}

// Init resets the state to empty, per spec.md §5 ("init() resets the word
// buffer, OOV counter, back-off slots, and length").
func (s *State) Init() {
	s.history.reset()
	s.length = 0
	s.oov = 0
	for i := range s.prevBackoff {
		s.prevBackoff[i] = 0
		s.currBackoff[i] = 0
	}
}

// Length returns the number of history words currently tracked (capped at
// order-1).
func (s *State) Length() int { return s.length }

// OOVCount returns the number of out-of-vocabulary words scored so far.
func (s *State) OOVCount() int { return s.oov }

func (s *State) pushWord(id uint64) {
	s.history.push(id)
}

// wordAt returns the id of the word m positions back (1 = most recent),
// valid for m in [1, s.length].
func (s *State) wordAt(m int) uint64 {
	return s.history.at(m)
}
