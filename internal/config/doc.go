// Package config loads HCL pipeline definitions.
//
//	output_dir = "${env.HOME}/wgs"
//	threads    = 8
//	inputs     = glob("reads/*.fastq")
//
//	quality_control {
//	  databases = ["/db/hg38"]
//	}
//
//	taxonomic_profile {}
//
//	functional_profile {
//	  use_taxonomic_profiles = true
//	}
package config
