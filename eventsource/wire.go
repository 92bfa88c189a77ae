// Package eventsource provides the EventSource capability (spec.md §4.4):
// delivering flowweb.FutexEvent records from an out-of-scope kernel probe,
// a codec for the wire layout in spec.md §6, and a concrete SPSC ring
// channel transport that carries decoded events rather than wire bytes.
package eventsource

import (
	"encoding/binary"

	"github.com/flowweb/flowweb"
)

// RecordSize is the fixed size in bytes of one wire record, per the
// host-endian packed layout in spec.md §6:
//
//	tid u32, pad u32, uaddr u64, futex_op i32, val u32, uaddr2 u64,
//	val3 u32, pad u32, timestamp_ns u64, ret i64
const RecordSize = 4 + 4 + 8 + 4 + 4 + 8 + 4 + 4 + 8 + 8

// Encode writes e's wire representation into buf, which must be at least
// RecordSize bytes. Readers advance by RecordSize per spec.md §6.
func Encode(e flowweb.FutexEvent, buf []byte) {
	_ = buf[RecordSize-1] // bounds check hint
	binary.NativeEndian.PutUint32(buf[0:4], e.Tid)
	binary.NativeEndian.PutUint32(buf[4:8], 0) // pad
	binary.NativeEndian.PutUint64(buf[8:16], e.Uaddr)
	binary.NativeEndian.PutUint32(buf[16:20], uint32(e.FutexOp))
	binary.NativeEndian.PutUint32(buf[20:24], e.Val)
	binary.NativeEndian.PutUint64(buf[24:32], e.Uaddr2)
	binary.NativeEndian.PutUint32(buf[32:36], e.Val3)
	binary.NativeEndian.PutUint32(buf[36:40], 0) // pad
	binary.NativeEndian.PutUint64(buf[40:48], e.TimestampNs)
	binary.NativeEndian.PutUint64(buf[48:56], uint64(e.Ret))
}

// Decode parses one wire record from buf, which must be at least
// RecordSize bytes.
func Decode(buf []byte) flowweb.FutexEvent {
	_ = buf[RecordSize-1]
	return flowweb.FutexEvent{
		Tid:         binary.NativeEndian.Uint32(buf[0:4]),
		Uaddr:       binary.NativeEndian.Uint64(buf[8:16]),
		FutexOp:     int32(binary.NativeEndian.Uint32(buf[16:20])),
		Val:         binary.NativeEndian.Uint32(buf[20:24]),
		Uaddr2:      binary.NativeEndian.Uint64(buf[24:32]),
		Val3:        binary.NativeEndian.Uint32(buf[32:36]),
		TimestampNs: binary.NativeEndian.Uint64(buf[40:48]),
		Ret:         int64(binary.NativeEndian.Uint64(buf[48:56])),
	}
}
