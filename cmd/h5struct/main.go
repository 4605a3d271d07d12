// Command h5struct inspects the group and dataset hierarchy of HDF5 files.
//
// Usage:
//
//	h5struct ls recording.h5 /run1
//	h5struct tree recording.h5 --depth 2
//	h5struct find recording.h5 voltage
//	h5struct cat recording.h5 /run1/voltage --max 20
//	h5struct select recording.h5 'type == "float64" && rank == 2'
//	h5struct dump recording.h5 --offset 0 --length 96
package main

func main() {
	execute()
}
