// Package driver runs one processing session of the TeX engine.
//
// A session is configured with a SessionBuilder, frozen by Create, executed
// once by Run, and its outputs handed over by IntoFileData:
//
//	var sb driver.SessionBuilder
//	sb.Bundle(b).
//		PrimaryInputBuffer(src).
//		TexInputName("texput.tex").
//		FormatName("latex").
//		FormatCachePath(formats).
//		OutputFormat(driver.FormatPDF).
//		DoNotWriteOutputFiles()
//
//	sess, err := sb.Create(st)
//	if err != nil {
//	    return err
//	}
//	if err := sess.Run(st); err != nil {
//	    return err
//	}
//	pdf, ok := sess.IntoFileData().Remove("texput.pdf")
//
// # Engines
//
// The typesetting itself is delegated to an Engine. ExecEngine drives a
// tectonic-compatible executable as a child process: the primary input is
// written to a private working directory, the program's stdout (notes) and
// stderr (warnings and errors) are parsed into status reports ("note:",
// "warning:", "error:" and "caused by:" lines), and
// every file left in the working directory becomes part of the session's
// output set. If the program fails, its log file is passed to
// status.Backend.DumpErrorLogs.
//
// Reports are always delivered on the goroutine that called Run, so a
// status.Backend never sees concurrent calls.
//
// # Output files
//
// The output set always holds everything the engine produced. KeepLogs and
// KeepIntermediates only decide which of those files are written to OutputDir
// when writing is enabled.
package driver
