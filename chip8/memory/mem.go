package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the size of the whole CHIP-8 address space.
	Size = 0x1000
	// MaxAddress is the last addressable byte.
	MaxAddress = Size - 1
	// ProgramStart is where ROM bytes are loaded and where execution begins.
	ProgramStart = 0x200
	// FontStart is the address of the first built-in glyph.
	FontStart = 0x000
)

// ErrAddressOutOfRange is returned for any access outside 0x000-0xFFF.
var ErrAddressOutOfRange = errors.New("address out of range")

// AddressError reports an out of range access.
type AddressError struct {
	Address uint32
	Length  int
}

func (e *AddressError) Error() string {
	if e.Length > 1 {
		return fmt.Sprintf("%v: 0x%04X (+%d bytes)", ErrAddressOutOfRange, e.Address, e.Length)
	}
	return fmt.Sprintf("%v: 0x%04X", ErrAddressOutOfRange, e.Address)
}

func (e *AddressError) Unwrap() error {
	return ErrAddressOutOfRange
}

// Memory is the 4 KiB CHIP-8 address space.
// The interpreter area (0x000-0x1FF) holds the font set, programs start at 0x200.
type Memory struct {
	data      [Size]byte
	romLoaded bool
	romSize   int
}

// New returns a zeroed memory with the built-in font set loaded.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], fontSet[:])
	return m
}

// CheckRange validates that length bytes starting at address are addressable.
func CheckRange(address uint32, length int) error {
	if length < 1 {
		length = 1
	}
	if address+uint32(length)-1 > MaxAddress {
		return &AddressError{Address: address, Length: length}
	}
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if err := CheckRange(uint32(address), 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if err := CheckRange(uint32(address), 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian 16 bit value at address and address+1.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if err := CheckRange(uint32(address), 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// ReadRange copies length bytes starting at address.
// Nothing is read if any byte of the range is out of bounds.
func (m *Memory) ReadRange(address uint16, length int) ([]byte, error) {
	if err := CheckRange(uint32(address), length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[address:])
	return out, nil
}

// WriteRange stores values starting at address.
// Nothing is written if any byte of the range is out of bounds.
func (m *Memory) WriteRange(address uint16, values []byte) error {
	if err := CheckRange(uint32(address), len(values)); err != nil {
		return err
	}
	copy(m.data[address:], values)
	return nil
}

// Window returns a copy of up to size bytes starting at start, truncated at the
// end of the address space. Used by debug views.
func (m *Memory) Window(start uint16, size int) []byte {
	if int(start) >= Size {
		return nil
	}
	if int(start)+size > Size {
		size = Size - int(start)
	}
	out := make([]byte, size)
	copy(out, m.data[start:])
	return out
}

// ROMSize returns the amount of bytes loaded by LoadROM, 0 if none.
func (m *Memory) ROMSize() int {
	return m.romSize
}
