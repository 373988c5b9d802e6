// Package files groups the packages that touch candidate files.
//
//   - filesystem: filesystem abstraction (OS and in-memory) used for walking, reading and removing
//   - delimiter: picks the header delimiter from the first line
//   - header: reads and normalizes the header line of one file
//   - scanner: walks a tree and removes files whose headers match a reference set
//
// # Usage
//
//	reg, err := registry.NewBuiltin()
//	if err != nil {
//	    return err
//	}
//	s := scanner.NewScanner(reg, logging.NewConsoleLogger(false), scanner.Options{})
//	result, err := s.Run("./exports")
package files
