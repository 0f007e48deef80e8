// Package tables contains the fixed lookup tables of the AEC decoder.
//
// The second-extension table maps a joint code value to the pair of
// samples it stands for (CCSDS 121.0-B-3, section 3.4.3).
package tables
