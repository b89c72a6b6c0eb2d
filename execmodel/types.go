package execmodel

import "fmt"

// ObjectID identifies an object independent of its version. It is opaque to
// the cache: equality and hashing are all that matter.
type ObjectID [32]byte

func (id ObjectID) String() string {
	return hexString(id[:])
}

// Version is a strictly increasing, per-ObjectID sequence number. The
// largest version cached for an id is that id's live version.
type Version uint64

// Digest is an opaque content hash. TransactionDigest and
// TransactionEffectsDigest are distinct named types over the same
// representation so a digest from one namespace cannot be silently used in
// place of the other.
type Digest [32]byte

func (d Digest) String() string {
	return hexString(d[:])
}

// IsZero reports whether d is the zero digest (never produced by NewDigest).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// TransactionDigest identifies a transaction.
type TransactionDigest Digest

func (d TransactionDigest) String() string { return Digest(d).String() }

// TransactionEffectsDigest identifies an effects record.
type TransactionEffectsDigest Digest

func (d TransactionEffectsDigest) String() string { return Digest(d).String() }

// Epoch identifies a validator epoch. The cache forwards it to the store on
// marker reads and otherwise ignores it; see DESIGN.md for the rationale.
type Epoch uint64

// Object is the validator's unit of state, identified jointly by (ID,
// Version). Contents is the opaque, already-serialized object payload; the
// cache never interprets it.
type Object struct {
	ID        ObjectID
	Version   Version
	Digest    Digest
	IsPackage bool
	IsChild   bool
	Contents  []byte
}

func (o Object) String() string {
	return fmt.Sprintf("Object{%s@%d}", o.ID, o.Version)
}

// PackageObject wraps an Object known to be immutable package code.
type PackageObject struct {
	inner Object
}

// NewPackageObject wraps obj as a PackageObject. The caller must have
// already verified obj.IsPackage; NewPackageObject does not re-check it so
// that *ObjectAsPackageError can be raised with the right context by the
// caller instead.
func NewPackageObject(obj Object) PackageObject {
	return PackageObject{inner: obj}
}

// Object returns the underlying object.
func (p PackageObject) Object() Object { return p.inner }

// ID returns the package's object id.
func (p PackageObject) ID() ObjectID { return p.inner.ID }

// Digest returns the package's content digest.
func (p PackageObject) Digest() Digest { return p.inner.Digest }

// MarkerKind distinguishes the two kinds of non-object annotation a
// transaction can leave against an object identity.
type MarkerKind uint8

const (
	// MarkerSharedDeleted records that a shared object was deleted at this
	// version by the transaction named in MarkerValue.TxDigest.
	MarkerSharedDeleted MarkerKind = iota + 1
	// MarkerReceived records that a transfer-by-receive of this object at
	// this version has been observed.
	MarkerReceived
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerSharedDeleted:
		return "SharedDeleted"
	case MarkerReceived:
		return "Received"
	default:
		return "Unknown"
	}
}

// MarkerValue is the payload stored against one (ObjectID, Version) pair in
// the marker sub-cache.
type MarkerValue struct {
	Kind     MarkerKind
	TxDigest TransactionDigest
}

// ObjectKey identifies one specific version of one object.
type ObjectKey struct {
	ID      ObjectID
	Version Version
}

func (k ObjectKey) String() string {
	return fmt.Sprintf("%s@%d", k.ID, k.Version)
}

// ObjectLookup is one slot of a multi-key object lookup result: the object
// and whether it was found. Used instead of a pointer so a not-found slot
// still carries a well-defined zero Object rather than a nil that callers
// must special-case.
type ObjectLookup struct {
	Object Object
	Found  bool
}

// MarkerWrite pairs an ObjectKey with the marker a transaction recorded
// against it.
type MarkerWrite struct {
	Key   ObjectKey
	Value MarkerValue
}

// ObjectWrite pairs an ObjectID with the object version a transaction wrote
// for it. The version is also present on Object.Version; both are carried
// so callers that only have the id on hand (e.g. package cache updates)
// don't need to re-derive it.
type ObjectWrite struct {
	ID     ObjectID
	Object Object
}

// Transaction is the minimal transaction envelope the cache needs: enough
// to recover the transaction digest that keys the effects/digest/pending
// triad.
type Transaction struct {
	DigestValue TransactionDigest
}

// Digest returns the transaction's digest.
func (t Transaction) Digest() TransactionDigest { return t.DigestValue }

// TransactionEffects is the structured result of executing a transaction.
type TransactionEffects struct {
	TransactionDigest TransactionDigest
	EffectsDigest     TransactionEffectsDigest
	Success           bool
	Created           []ObjectKey
	Mutated           []ObjectKey
	Deleted           []ObjectKey
}

// Digest returns the effects' own digest.
func (e TransactionEffects) Digest() TransactionEffectsDigest { return e.EffectsDigest }

// TransactionOutputs is the bundle produced by executing one transaction,
// consumed atomically by the cache's write path.
type TransactionOutputs struct {
	Transaction Transaction
	Effects     TransactionEffects
	Markers     []MarkerWrite
	Written     []ObjectWrite
}
