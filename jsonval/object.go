package jsonval

import "sort"

// Member is one key-value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered mapping from string keys to Values. Members
// are kept sorted by key, which is the iteration order the codec
// promises; lookup is a binary search over a borrowed key, so no
// allocation happens per lookup.
//
// Set overwrites an existing entry, so duplicate keys in parsed input
// resolve to the last occurrence (last write wins).
type Object struct {
	members []Member
}

// NewObjectOf builds an object from the given members. Later
// duplicates overwrite earlier ones.
func NewObjectOf(members ...Member) Object {
	var o Object
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// find returns the insertion index for key and whether it is present.
func (o *Object) find(key string) (int, bool) {
	i := sort.Search(len(o.members), func(i int) bool {
		return o.members[i].Key >= key
	})
	return i, i < len(o.members) && o.members[i].Key == key
}

// Get returns a pointer to the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	i, ok := o.find(key)
	if !ok {
		return nil, false
	}
	return &o.members[i].Value, true
}

// Set stores value under key, overwriting any existing entry.
func (o *Object) Set(key string, value Value) {
	i, ok := o.find(key)
	if ok {
		o.members[i].Value = value
		return
	}
	o.members = append(o.members, Member{})
	copy(o.members[i+1:], o.members[i:])
	o.members[i] = Member{Key: key, Value: value}
}

// getOrInsert returns the value stored under key, inserting a null
// entry when the key is absent.
func (o *Object) getOrInsert(key string) *Value {
	i, ok := o.find(key)
	if !ok {
		o.members = append(o.members, Member{})
		copy(o.members[i+1:], o.members[i:])
		o.members[i] = Member{Key: key}
	}
	return &o.members[i].Value
}

// Delete removes the entry under key and reports whether it existed.
func (o *Object) Delete(key string) bool {
	i, ok := o.find(key)
	if !ok {
		return false
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	return true
}

// MemberAt returns the i-th member in key order. The pointer stays
// valid until the object is mutated again.
func (o *Object) MemberAt(i int) *Member { return &o.members[i] }

// Clone returns a deep copy of the object.
func (o *Object) Clone() Object {
	out := Object{members: make([]Member, len(o.members))}
	for i := range o.members {
		out.members[i] = Member{Key: o.members[i].Key, Value: o.members[i].Value.Clone()}
	}
	return out
}
