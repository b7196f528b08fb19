package build

// TestResult returns a canned successful BuildResult with realistic
// cargo stdout and rustc JSON diagnostics on stderr. Downstream
// consumers use it to exercise their pipelines without running a build.
func TestResult() BuildResult {
	code := 0
	return BuildResult{
		Status: &code,
		Stdout: "   Compiling zero v0.1.2   \nCompiling xmas-elf v0.2.0 (file:///home/ncameron/dwarf/xmas-elf)\n",
		Stderr: `{"message":"use of deprecated item: use raw accessors/constructors in ` + "`slice`" + ` module, #[warn(deprecated)] on by default","code":null,"level":"warning","spans":[{"file_name":"src/sections.rs","byte_start":25644,"byte_end":25653,"line_start":484,"line_end":484,"column_start":38,"column_end":47,"text":[{"text":"            let slice = raw::Slice { data: ptr, len: self.desc_size as usize };","highlight_start":38,"highlight_end":47}]}],"children":[]}
{"message":"unused variable: ` + "`file`" + `, #[warn(unused_variables)] on by default","code":null,"level":"warning","spans":[{"file_name":"src/sections.rs","byte_start":25791,"byte_end":25795,"line_start":490,"line_end":490,"column_start":52,"column_end":56,"text":[{"text":"pub fn sanity_check<'a>(header: SectionHeader<'a>, file: &ElfFile<'a>) -> Result<(), &'static str> {","highlight_start":52,"highlight_end":56}]}],"children":[]}
{"message":"unused import, #[warn(unused_imports)] on by default","code":null,"level":"warning","spans":[{"file_name":"src/bin/main.rs","byte_start":108,"byte_end":114,"line_start":4,"line_end":4,"column_start":32,"column_end":38,"text":[{"text":"use xmas_elf::sections::{self, ShType};","highlight_start":32,"highlight_end":38}]}],"children":[]}
`,
	}
}
