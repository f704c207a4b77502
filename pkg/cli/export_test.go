package cli

var WriteReport = writeReport
