package ecs

import "iter"

const (
	blockSize = 64
)

// blockStorage stores values of type T in fixed-size blocks so that the
// address of a stored value never changes while it is alive. Deleted slots
// are recycled by later appends.
type blockStorage[T any] struct {
	blocks    [][blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
}

// Append adds a value to storage and returns its slot.
func (bs *blockStorage[T]) Append(item T) int {
	if len(bs.freeSlots) > 0 {
		index := bs.freeSlots[len(bs.freeSlots)-1]
		bs.freeSlots = bs.freeSlots[:len(bs.freeSlots)-1]

		blockIdx := index / blockSize
		slotIdx := index % blockSize

		bs.blocks[blockIdx][slotIdx] = item
		bs.filled[blockIdx][slotIdx] = true
		return index
	}

	index := bs.nextIndex
	bs.nextIndex++

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	if blockIdx >= len(bs.blocks) {
		bs.blocks = append(bs.blocks, [blockSize]T{})
		bs.filled = append(bs.filled, [blockSize]bool{})
	}

	bs.blocks[blockIdx][slotIdx] = item
	bs.filled[blockIdx][slotIdx] = true
	return index
}

// Get returns a pointer to the value in the given slot, or nil if the slot is empty.
func (bs *blockStorage[T]) Get(index int) *T {
	if !bs.Has(index) {
		return nil
	}
	return &bs.blocks[index/blockSize][index%blockSize]
}

// Delete marks a slot as empty and zeroes its value.
func (bs *blockStorage[T]) Delete(index int) {
	if !bs.Has(index) {
		return
	}

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	bs.filled[blockIdx][slotIdx] = false
	var zero T
	bs.blocks[blockIdx][slotIdx] = zero
	bs.freeSlots = append(bs.freeSlots, index)
}

// Has checks if a value exists in the given slot.
func (bs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= bs.nextIndex {
		return false
	}

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	if blockIdx >= len(bs.blocks) {
		return false
	}

	return bs.filled[blockIdx][slotIdx]
}

// Len returns the number of occupied slots.
func (bs *blockStorage[T]) Len() int {
	return bs.nextIndex - len(bs.freeSlots)
}

// Compact moves all live values to the front of storage and returns the
// old slot to new slot mapping. Pointers obtained before Compact are stale.
func (bs *blockStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)
	writePos := 0

	total := bs.Len()
	if bs.nextIndex == 0 || total == 0 {
		bs.blocks = nil
		bs.filled = nil
		bs.freeSlots = nil
		bs.nextIndex = 0
		return indexMap
	}

	numNewBlocks := (total + blockSize - 1) / blockSize
	newBlocks := make([][blockSize]T, numNewBlocks)
	newFilled := make([][blockSize]bool, numNewBlocks)

	for readIdx := 0; readIdx < bs.nextIndex; readIdx++ {
		readBlockIdx := readIdx / blockSize
		readSlotIdx := readIdx % blockSize

		if !bs.filled[readBlockIdx][readSlotIdx] {
			continue
		}
		indexMap[readIdx] = writePos

		writeBlockIdx := writePos / blockSize
		writeSlotIdx := writePos % blockSize

		newBlocks[writeBlockIdx][writeSlotIdx] = bs.blocks[readBlockIdx][readSlotIdx]
		newFilled[writeBlockIdx][writeSlotIdx] = true

		writePos++
	}

	bs.blocks = newBlocks
	bs.filled = newFilled
	bs.freeSlots = nil
	bs.nextIndex = writePos

	return indexMap
}

// Iter yields every occupied slot in slot order.
func (bs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < bs.nextIndex; i++ {
			if !bs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
