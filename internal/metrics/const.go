package metrics

const Namespace = "shuul_console"
