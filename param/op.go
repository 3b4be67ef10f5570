package param

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// ReplicateOp is an entry staged in the leader's replication queue: an
// opaque payload plus the OpId it was proposed under. The queue never
// inspects Payload; it only accounts the byte size recorded at
// construction time, which is why Size is a field rather than something
// recomputed from the proto message on every access.
type ReplicateOp struct {
	Id      OpId
	Payload *anypb.Any
	size    int
}

// NewReplicateOp wraps a proposer-supplied proto message as the payload of
// a new op, computing its accounted size from the wire-encoded Any.
func NewReplicateOp(id OpId, msg proto.Message) (*ReplicateOp, error) {
	any, err := anypb.New(msg)
	if err != nil {
		return nil, err
	}
	return &ReplicateOp{Id: id, Payload: any, size: proto.Size(any)}, nil
}

// NewReplicateOpWithSize builds an op whose accounted size is supplied
// explicitly rather than derived from the payload. Real proposers that
// batch several small commands into one op, or that want the accounted
// size to include out-of-band framing, construct ops this way.
func NewReplicateOpWithSize(id OpId, payload *anypb.Any, size int) *ReplicateOp {
	return &ReplicateOp{Id: id, Payload: payload, size: size}
}

// Size returns the number of bytes this op charges against a memory
// accountant.
func (op *ReplicateOp) Size() int {
	return op.size
}
